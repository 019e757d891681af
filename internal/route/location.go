// Package route holds the application's location history and decides which
// view a location may render.
package route

import (
	"net/url"
	"strings"
)

// Location is an in-app address: path, query and fragment.
type Location struct {
	Path     string
	Query    url.Values
	Fragment string
}

// Parse accepts a bare path ("/tutor?topic=math#x") or a full URL such as
// the one the login page redirects to. Scheme and host are dropped.
func Parse(raw string) Location {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Path: "/"}
	}
	loc := Location{
		Path:     u.Path,
		Query:    u.Query(),
		Fragment: u.Fragment,
	}
	if loc.Path == "" {
		loc.Path = "/"
	}
	if len(loc.Query) == 0 {
		loc.Query = nil
	}
	return loc
}

// At returns a location for path with no query or fragment.
func At(path string) Location {
	return Location{Path: path}
}

// WithQuery returns a copy of l with key set to value.
func (l Location) WithQuery(key, value string) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, value)
	l.Query = q
	return l
}

// Param returns the first query value for key.
func (l Location) Param(key string) string {
	return l.Query.Get(key)
}

func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.Path)
	if len(l.Query) > 0 {
		sb.WriteString("?")
		sb.WriteString(l.Query.Encode())
	}
	if l.Fragment != "" {
		sb.WriteString("#")
		sb.WriteString(l.Fragment)
	}
	return sb.String()
}
