package api

import (
	"context"
	"errors"
	"fmt"
)

// CreateSession exchanges a one-time session handoff token for a backend
// session. The backend answers with a session cookie, which the client's
// jar keeps for later calls. The cookie is marked Secure, so against an
// http backend the token from the body is held instead.
func (c *Client) CreateSession(ctx context.Context, sessionID string) (*User, error) {
	var resp struct {
		User         *User  `json:"user"`
		SessionToken string `json:"session_token"`
	}
	body := map[string]string{"session_id": sessionID}
	if err := c.post(ctx, "/auth/session", body, &resp); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	if resp.User == nil {
		return nil, errors.New("creating session: response has no user")
	}
	c.adoptSessionToken(resp.SessionToken)
	return resp.User, nil
}

// CurrentUser returns the user owning the session cookie. An absent or
// expired session is a *StatusError with code 401.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the backend session. The jar's cookies are dropped even
// when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ForgetCookies()
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// UpdateInterests replaces the user's learning interests.
func (c *Client) UpdateInterests(ctx context.Context, interests []string) error {
	if interests == nil {
		interests = []string{}
	}
	body := map[string][]string{"interests": interests}
	if err := c.put(ctx, "/auth/interests", body, nil); err != nil {
		return fmt.Errorf("updating interests: %w", err)
	}
	return nil
}
