package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d from %s %s", e.Code, e.Method, e.Path)
	}
	return fmt.Sprintf("HTTP %d from %s %s: %s", e.Code, e.Method, e.Path, e.Detail)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusUnauthorized
}

// newStatusError extracts the FastAPI {"detail": "..."} message when the
// body carries one, falling back to the raw body.
func newStatusError(method, path string, code int, body []byte) *StatusError {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	detail := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			detail = s
		} else if b, err := json.Marshal(payload.Detail); err == nil {
			detail = string(b)
		}
	}
	return &StatusError{Method: method, Path: path, Code: code, Detail: detail}
}
