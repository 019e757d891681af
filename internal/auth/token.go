package auth

import "strings"

const sessionIDKey = "session_id="

// SessionToken extracts the session handoff token from a location
// fragment such as "#session_id=abc123&foo=bar". The token runs from
// "session_id=" up to the next "&" or the end of the fragment. ok is false
// when the fragment carries no "session_id=" at all; an empty token with
// ok true means the key was present without a value.
func SessionToken(fragment string) (token string, ok bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	_, rest, found := strings.Cut(fragment, sessionIDKey)
	if !found {
		return "", false
	}
	token, _, _ = strings.Cut(rest, "&")
	return token, true
}
