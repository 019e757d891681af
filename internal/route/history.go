package route

import "sync"

// History is a browser-style stack of locations. It is safe for use from
// commands running off the event loop.
type History struct {
	mu      sync.Mutex
	entries []entry
	nextID  uint64
}

type entry struct {
	id  uint64
	loc Location
}

// NewHistory starts a history at loc.
func NewHistory(loc Location) *History {
	h := &History{}
	h.entries = []entry{h.newEntry(loc)}
	return h
}

func (h *History) newEntry(loc Location) entry {
	h.nextID++
	return entry{id: h.nextID, loc: loc}
}

// Current returns the top entry.
func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1].loc
}

// Push navigates to loc, keeping the current entry for Back.
func (h *History) Push(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, h.newEntry(loc))
}

// Replace overwrites the current entry without adding a new one.
func (h *History) Replace(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1].loc = loc
}

// Back pops the current entry. It reports false when already at the
// first entry.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 1 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Len is the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Pin returns a handle on the current entry. The handle keeps addressing
// that entry after later pushes; once the entry is popped it reads as
// having no fragment.
func (h *History) Pin() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Entry{h: h, id: h.entries[len(h.entries)-1].id}
}

// Entry is one pinned history entry.
type Entry struct {
	h  *History
	id uint64
}

// Location returns the entry's location, or false if it is no longer in
// the history.
func (e Entry) Location() (Location, bool) {
	e.h.mu.Lock()
	defer e.h.mu.Unlock()
	if i := e.h.index(e.id); i >= 0 {
		return e.h.entries[i].loc, true
	}
	return Location{}, false
}

// Fragment returns the entry's fragment.
func (e Entry) Fragment() string {
	loc, _ := e.Location()
	return loc.Fragment
}

// ClearFragment drops the entry's fragment in place, wherever the entry
// now sits in the stack.
func (e Entry) ClearFragment() {
	e.h.mu.Lock()
	defer e.h.mu.Unlock()
	if i := e.h.index(e.id); i >= 0 {
		e.h.entries[i].loc.Fragment = ""
	}
}

// index must be called with mu held.
func (h *History) index(id uint64) int {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].id == id {
			return i
		}
	}
	return -1
}
