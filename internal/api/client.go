package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountClient defines the calls the dispatcher issues against the
// accounts service. Implemented by *Client; test doubles implement it to
// exercise the dispatcher without a server.
type AccountClient interface {
	Login(ctx context.Context, username, password string) (map[string]any, error)
	Hydrate(ctx context.Context) (map[string]any, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateUser(ctx context.Context, username string, body map[string]any) (map[string]any, error)
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context, searchText string) ([]map[string]any, error)
	StartPasswordReset(ctx context.Context, email string) error
	FinishPasswordReset(ctx context.Context, email, code, password string) error
}

// Ensure Client implements AccountClient at compile time.
var _ AccountClient = (*Client)(nil)

// Client talks to the accounts HTTP API. Session cookies set by the server
// are kept in a jar; the CSRF token the server mirrors into a cookie is
// replayed as a request header on every call that carries one.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

const (
	defaultBaseURL   = "127.0.0.1:8080"
	defaultUserAgent = "roster/0.1"
	requestTimeout   = 10 * time.Second

	csrfHeader      = "X-CSRF-TOKEN"
	requestIDHeader = "X-Request-ID"
)

// csrfCookies are checked in order; the access token wins when both exist.
var csrfCookies = []string{"csrf_access_token", "csrf_refresh_token"}

// NewClient builds a Client for the given base address. A bare host:port
// gets an http scheme.
func NewClient(baseAddr string, log zerolog.Logger) (*Client, error) {
	base, err := parseBaseURL(baseAddr)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
		log:       log,
	}, nil
}

// Login authenticates with username and password and returns the user
// payload. The session and CSRF cookies arrive on the response.
func (c *Client) Login(ctx context.Context, username, password string) (map[string]any, error) {
	body := map[string]any{"username": username, "password": password}
	var payload map[string]any
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/login"}, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Hydrate restores an existing session from cookies and returns the user
// payload. Fails with invalid-credentials on anonymous visits.
func (c *Client) Hydrate(ctx context.Context) (map[string]any, error) {
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/login"}, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Logout ends the session server-side so the cookies stop working.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, &url.URL{Path: "/logout"}, map[string]any{}, nil)
}

// Register creates a new account and returns the server's payload.
func (c *Client) Register(ctx context.Context, body map[string]any) (map[string]any, error) {
	var payload map[string]any
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/users"}, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateUser replaces the account addressed by username and returns the
// server's payload.
func (c *Client) UpdateUser(ctx context.Context, username string, body map[string]any) (map[string]any, error) {
	var payload map[string]any
	rel := &url.URL{Path: "/users/" + username}
	if err := c.do(ctx, http.MethodPut, rel, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DeleteUser removes the account addressed by username. DELETE carries no
// response body in this protocol.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, &url.URL{Path: "/users/" + username}, nil, nil)
}

// ListUsers retrieves accounts matching the search text, all accounts when
// it is empty.
func (c *Client) ListUsers(ctx context.Context, searchText string) ([]map[string]any, error) {
	rel := &url.URL{Path: "/users"}
	if strings.TrimSpace(searchText) != "" {
		values := url.Values{}
		values.Set("search_text", searchText)
		rel.RawQuery = values.Encode()
	}
	var payload []map[string]any
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// StartPasswordReset asks the server to mail a reset code to the address.
// The response carries the refresh cookie the finish call needs; it has no
// JSON body.
func (c *Client) StartPasswordReset(ctx context.Context, email string) error {
	body := map[string]any{"email": email}
	return c.do(ctx, http.MethodPost, &url.URL{Path: "/pw_reset"}, body, nil)
}

// FinishPasswordReset redeems a mailed reset code for a new password.
func (c *Client) FinishPasswordReset(ctx context.Context, email, code, password string) error {
	body := map[string]any{"email": email, "reset_code": code, "password": password}
	return c.do(ctx, http.MethodPut, &url.URL{Path: "/pw_reset"}, body, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.csrfToken(); token != "" {
		req.Header.Set(csrfHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", rel.Path).
			Str("request_id", requestID).Msg("request failed")
		return &Error{Kind: KindFetch, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().Str("method", method).Str("path", rel.Path).
		Str("request_id", requestID).Int("status", resp.StatusCode).Msg("api request")

	if resp.StatusCode >= 400 {
		return &Error{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// csrfToken finds the server's CSRF token among the jarred cookies.
func (c *Client) csrfToken() string {
	if c.http.Jar == nil {
		return ""
	}
	cookies := c.http.Jar.Cookies(c.baseURL)
	for _, name := range csrfCookies {
		for _, cookie := range cookies {
			if cookie.Name == name && cookie.Value != "" {
				return cookie.Value
			}
		}
	}
	return ""
}

func parseBaseURL(baseAddr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseAddr)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", baseAddr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
