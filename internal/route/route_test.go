package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/auth"
)

var (
	pending   = auth.Outcome{}
	anonymous = auth.Resolved(nil)
	signedIn  = auth.Resolved(&api.User{ID: "u1", Name: "Ann"})
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		path     string
		topic    string
		fragment string
	}{
		{"/tutor#session_id=xyz", "/tutor", "", "session_id=xyz"},
		{"http://localhost:3000/dashboard#session_id=abc&x=1", "/dashboard", "", "session_id=abc&x=1"},
		{"/tutor?topic=math", "/tutor", "math", ""},
		{"", "/", "", ""},
		{"https://app.example.com", "/", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc := Parse(tt.raw)
			assert.Equal(t, tt.path, loc.Path)
			assert.Equal(t, tt.topic, loc.Param("topic"))
			assert.Equal(t, tt.fragment, loc.Fragment)
		})
	}
}

func TestLocationString(t *testing.T) {
	loc := At("/tutor").WithQuery("topic", "math")
	loc.Fragment = "top"
	assert.Equal(t, "/tutor?topic=math#top", loc.String())
	assert.Equal(t, "/", At("/").String())
}

func TestHistory(t *testing.T) {
	h := NewHistory(Parse("/dashboard#session_id=abc"))
	start := h.Pin()
	assert.Equal(t, "session_id=abc", start.Fragment())

	start.ClearFragment()
	assert.Equal(t, "/dashboard", h.Current().String())
	assert.Equal(t, 1, h.Len(), "clearing the fragment does not add an entry")

	h.Push(At("/tutor"))
	assert.Equal(t, 2, h.Len())
	require.True(t, h.Back())
	assert.False(t, h.Back())
	assert.Equal(t, "/dashboard", h.Current().Path)
}

func TestHistoryPin_FollowsEntryAcrossPushes(t *testing.T) {
	h := NewHistory(Parse("/dashboard#session_id=abc"))
	start := h.Pin()

	h.Push(Parse("/tutor#notes"))
	assert.Equal(t, "session_id=abc", start.Fragment())

	start.ClearFragment()
	assert.Equal(t, "/tutor#notes", h.Current().String(), "the top entry is left alone")
	require.True(t, h.Back())
	assert.Equal(t, "/dashboard", h.Current().String())
}

func TestHistoryPin_PoppedEntry(t *testing.T) {
	h := NewHistory(At("/"))
	h.Push(Parse("/tutor#session_id=abc"))
	top := h.Pin()
	require.True(t, h.Back())
	h.Push(Parse("/dashboard#keep"))

	_, ok := top.Location()
	assert.False(t, ok)
	assert.Empty(t, top.Fragment())
	top.ClearFragment()
	assert.Equal(t, "/dashboard#keep", h.Current().String())
}

func TestDecide(t *testing.T) {
	tests := []struct {
		path    string
		outcome auth.Outcome
		want    Decision
	}{
		{"/", pending, Decision{Render, Landing}},
		{"/", anonymous, Decision{Render, Landing}},
		{"/", signedIn, Decision{Render, Landing}},
		{"/tutor", pending, Decision{Loading, Tutor}},
		{"/tutor", anonymous, Decision{Redirect, Landing}},
		{"/tutor", signedIn, Decision{Render, Tutor}},
		{"/dashboard", pending, Decision{Loading, Dashboard}},
		{"/dashboard", anonymous, Decision{Redirect, Landing}},
		{"/dashboard", signedIn, Decision{Render, Dashboard}},
		{"/nope", signedIn, Decision{Redirect, Landing}},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.path, tt.outcome))
		})
	}
}

func TestRouter_AnonymousRedirectIsRepeatableAndReplaces(t *testing.T) {
	r := NewRouter(NewHistory(At("/")))

	for i := 0; i < 5; i++ {
		d := r.Navigate(At("/dashboard"), anonymous)
		assert.Equal(t, Decision{Redirect, Landing}, d)
		assert.Equal(t, "/", r.Current().Path)
	}

	// Going back never reaches a protected entry.
	for r.History().Len() > 1 {
		d := r.Back(anonymous)
		assert.Equal(t, Render, d.Action)
		assert.Equal(t, "/", r.Current().Path)
	}
}

func TestRouter_PendingDoesNotTouchHistory(t *testing.T) {
	r := NewRouter(NewHistory(At("/tutor")))

	d := r.Evaluate(pending)
	assert.Equal(t, Loading, d.Action)
	assert.Equal(t, "/tutor", r.Current().Path)

	d = r.Evaluate(signedIn)
	assert.Equal(t, Decision{Render, Tutor}, d)
}

func TestRouter_LogoutOnProtectedViewRedirects(t *testing.T) {
	r := NewRouter(NewHistory(At("/")))
	require.Equal(t, Render, r.Navigate(At("/tutor"), signedIn).Action)

	d := r.Evaluate(anonymous)
	assert.Equal(t, Decision{Redirect, Landing}, d)
	assert.Equal(t, 2, r.History().Len())
	assert.Equal(t, "/", r.Current().Path)
}
