package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	userAgent      = "tutor/1.0"
	defaultTimeout = 10 * time.Second

	sessionCookie = "session_token"
)

// Client is the tutoring backend API client. Every request carries the
// cookies held in its jar, so the backend's session cookie set by
// CreateSession is sent on all later calls.
type Client struct {
	base string
	http *http.Client
	jar  *cookiejar.Jar
}

// NewClient creates a client for the API rooted at base (for example
// "http://localhost:8001/api").
func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &Client{
		base: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		jar: jar,
	}
}

// Cookies returns the session cookies currently held for the backend.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.base)
	if err != nil {
		return nil
	}
	return c.jar.Cookies(u)
}

// RestoreCookies loads previously saved cookies into the jar.
func (c *Client) RestoreCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.base)
	if err != nil || len(cookies) == 0 {
		return
	}
	c.jar.SetCookies(u, cookies)
}

// adoptSessionToken stores token as a plain session cookie for the base
// URL unless the jar already sends one there.
func (c *Client) adoptSessionToken(token string) {
	if token == "" {
		return
	}
	for _, ck := range c.Cookies() {
		if ck.Name == sessionCookie {
			return
		}
	}
	u, err := url.Parse(c.base)
	if err != nil {
		return
	}
	c.jar.SetCookies(u, []*http.Cookie{{Name: sessionCookie, Value: token, Path: "/"}})
}

// ForgetCookies expires every cookie held for the backend.
func (c *Client) ForgetCookies() {
	u, err := url.Parse(c.base)
	if err != nil {
		return
	}
	var expired []*http.Cookie
	for _, ck := range c.jar.Cookies(u) {
		expired = append(expired, &http.Cookie{Name: ck.Name, Path: "/", MaxAge: -1})
	}
	c.jar.SetCookies(u, expired)
}

func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) put(ctx context.Context, path string, body, dst interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, dst)
}

// do sends a JSON request and decodes the JSON response into dst.
// A nil dst discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.base + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return newStatusError(method, path, resp.StatusCode, data)
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
