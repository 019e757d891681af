package route

import "github.com/fragmede/tutor/internal/auth"

// View names a renderable page by its path.
type View string

const (
	Landing   View = "/"
	Tutor     View = "/tutor"
	Dashboard View = "/dashboard"
)

var views = map[View]bool{
	Landing:   false,
	Tutor:     true,
	Dashboard: true,
}

// Lookup maps a path to its view.
func Lookup(path string) (View, bool) {
	v := View(path)
	_, ok := views[v]
	return v, ok
}

// Protected reports whether v requires a signed-in user.
func (v View) Protected() bool {
	return views[v]
}

// Action is what the shell should do for a requested location.
type Action int

const (
	Render Action = iota
	Loading
	Redirect
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision pairs an action with its view: the view to render for Render,
// the redirect target for Redirect, and the requested view for Loading.
type Decision struct {
	Action Action
	View   View
}

// Decide is the route guard. Public views always render. Protected views
// show the loading placeholder while the outcome is pending, render for a
// signed-in user and redirect anonymous visitors to the landing view.
// Unknown paths redirect to the landing view.
func Decide(path string, o auth.Outcome) Decision {
	v, ok := Lookup(path)
	if !ok {
		return Decision{Action: Redirect, View: Landing}
	}
	if !v.Protected() {
		return Decision{Action: Render, View: v}
	}
	switch o.State() {
	case auth.Authenticated:
		return Decision{Action: Render, View: v}
	case auth.Anonymous:
		return Decision{Action: Redirect, View: Landing}
	default:
		return Decision{Action: Loading, View: v}
	}
}

// Router applies guard decisions to a history.
type Router struct {
	history *History
}

func NewRouter(h *History) *Router {
	return &Router{history: h}
}

func (r *Router) History() *History {
	return r.history
}

func (r *Router) Current() Location {
	return r.history.Current()
}

// Navigate pushes loc and evaluates it.
func (r *Router) Navigate(loc Location, o auth.Outcome) Decision {
	r.history.Push(loc)
	return r.Evaluate(o)
}

// Back pops one entry and evaluates the one below it.
func (r *Router) Back(o auth.Outcome) Decision {
	r.history.Back()
	return r.Evaluate(o)
}

// Evaluate runs the guard on the current entry. A redirect replaces the
// entry, so going back afterwards cannot land on the refused view again.
func (r *Router) Evaluate(o auth.Outcome) Decision {
	d := Decide(r.history.Current().Path, o)
	if d.Action == Redirect {
		r.history.Replace(At(string(d.View)))
	}
	return d
}
