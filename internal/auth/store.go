package auth

import (
	"context"
	"log"
	"sync"

	"github.com/fragmede/tutor/internal/api"
)

// Store holds the resolution outcome for the lifetime of one load. The
// resolver settles it once; Logout is the only later transition.
type Store struct {
	mu      sync.Mutex
	outcome Outcome
	settled chan struct{}
	backend Backend
	logger  *log.Logger
}

// NewStore creates a store in the Pending state. A nil logger uses
// log.Default().
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		settled: make(chan struct{}),
		backend: backend,
		logger:  logger,
	}
}

// Outcome returns the current outcome.
func (s *Store) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// User returns the signed-in user, or nil when pending or anonymous.
func (s *Store) User() *api.User {
	return s.Outcome().User()
}

// Settle records the resolver's outcome. Only the first settled outcome
// is kept; a Pending outcome or any later call is ignored. It reports
// whether o was recorded.
func (s *Store) Settle(o Outcome) bool {
	if !o.Settled() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome.Settled() {
		return false
	}
	s.outcome = o
	close(s.settled)
	return true
}

// Wait blocks until the outcome has settled or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Logout ends the backend session and clears the local identity. It first
// waits for an in-flight resolution so that a late result cannot bring a
// logged-out user back. The local state is cleared whatever the backend
// call returns; failures are logged only.
func (s *Store) Logout(ctx context.Context) {
	if err := s.Wait(ctx); err != nil {
		s.logger.Printf("auth: logout before session resolved: %v", err)
	}

	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Printf("auth: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.outcome.Settled() {
		close(s.settled)
	}
	s.outcome = Resolved(nil)
}
