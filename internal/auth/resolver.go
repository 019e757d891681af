package auth

import (
	"context"
	"log"

	"github.com/fragmede/tutor/internal/api"
)

// Backend is the part of the API client the auth core depends on.
type Backend interface {
	CreateSession(ctx context.Context, sessionID string) (*api.User, error)
	CurrentUser(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

// Address is the location the load started at. The resolver reads the
// handoff token from it and strips it off again, even if the visitor has
// navigated elsewhere in the meantime.
type Address interface {
	Fragment() string
	// ClearFragment drops the fragment from that entry in place, without
	// navigating.
	ClearFragment()
}

// Resolver decides once per load whether the visitor is signed in.
type Resolver struct {
	backend Backend
	logger  *log.Logger
}

// NewResolver creates a resolver. A nil logger uses log.Default().
func NewResolver(backend Backend, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{backend: backend, logger: logger}
}

// Resolve runs exactly one of the two resolution paths, chosen by whether
// the fragment carries a session handoff token, and never returns a
// Pending outcome.
func (r *Resolver) Resolve(ctx context.Context, addr Address) Outcome {
	if token, ok := SessionToken(addr.Fragment()); ok {
		return r.exchange(ctx, addr, token)
	}

	// A missing session is the expected case and is not logged.
	user, err := r.backend.CurrentUser(ctx)
	if err != nil {
		return Resolved(nil)
	}
	return Resolved(user)
}

func (r *Resolver) exchange(ctx context.Context, addr Address, token string) Outcome {
	user, err := r.backend.CreateSession(ctx, token)
	addr.ClearFragment()
	if err != nil {
		r.logger.Printf("auth: session exchange failed: %v", err)
		return Resolved(nil)
	}
	return Resolved(user)
}
