package landing

import "github.com/fragmede/tutor/internal/api"

type subject struct {
	glyph string
	about string
}

// subjects maps the backend's icon names to a glyph and a short line on
// what the tutor covers under that icon.
var subjects = map[string]subject{
	"calculator": {"∑", "numbers, equations and proofs"},
	"code":       {"λ", "programs and how they run"},
	"leaf":       {"❦", "living things and ecosystems"},
	"book-open":  {"¶", "reading, writing and literature"},
	"landmark":   {"⌂", "people, places and the past"},
	"atom":       {"⚛", "matter, energy and motion"},
	"flask":      {"⚗", "elements and reactions"},
	"palette":    {"✎", "art, color and design"},
}

// TopicItem wraps a topic for the bubbles list.
type TopicItem struct {
	api.Topic
	Index int
}

func (t TopicItem) Title() string {
	return t.Topic.Name
}

// Description says what the topic covers. Topics with an icon the client
// does not know fall back to a generic line.
func (t TopicItem) Description() string {
	if s, ok := subjects[t.Topic.Icon]; ok {
		return s.about + " · chat or quiz"
	}
	return "ask anything, then quiz yourself"
}

func (t TopicItem) Glyph() string {
	if s, ok := subjects[t.Topic.Icon]; ok {
		return s.glyph
	}
	return "•"
}

func (t TopicItem) FilterValue() string {
	return t.Topic.Name + " " + t.Topic.ID
}
