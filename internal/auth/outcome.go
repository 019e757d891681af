// Package auth resolves and holds the signed-in identity for one load of
// the application.
package auth

import "github.com/fragmede/tutor/internal/api"

// State is the tag of an Outcome.
type State int

const (
	Pending State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Outcome is the result of session resolution. The zero value is Pending.
// An Authenticated outcome always carries a user; the other states never
// do.
type Outcome struct {
	state State
	user  *api.User
}

// Resolved returns an Authenticated outcome for user, or Anonymous when
// user is nil.
func Resolved(user *api.User) Outcome {
	if user == nil {
		return Outcome{state: Anonymous}
	}
	return Outcome{state: Authenticated, user: user}
}

func (o Outcome) State() State { return o.state }

// User is nil unless the outcome is Authenticated.
func (o Outcome) User() *api.User { return o.user }

// Settled reports whether resolution has finished.
func (o Outcome) Settled() bool { return o.state != Pending }

func (o Outcome) String() string {
	if o.state == Authenticated {
		return o.state.String() + "(" + o.user.ID + ")"
	}
	return o.state.String()
}
