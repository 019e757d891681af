package messages

import (
	"github.com/fragmede/tutor/internal/auth"
	"github.com/fragmede/tutor/internal/route"
)

// Navigation messages.
type (
	NavigateMsg   struct{ To route.Location }
	GoBackMsg     struct{}
	OpenSignInMsg struct{}
	LogoutMsg     struct{}

	// ReloadMsg starts a fresh load at URL, typically the login page's
	// redirect carrying a session handoff token.
	ReloadMsg struct{ URL string }
)

// Session messages. Load is the generation of the load that produced the
// message; results from an earlier load are dropped.
type (
	SessionResolvedMsg struct {
		Outcome auth.Outcome
		Load    int
	}

	LoggedOutMsg struct {
		Load int
	}
)

type StatusMsg struct {
	Text    string
	IsError bool
}
