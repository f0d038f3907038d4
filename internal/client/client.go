// ABOUTME: Authenticated HTTP client for the AmaBakery backend
// ABOUTME: Single choke point: token attachment, cookies, one refresh-and-retry on 401

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Acrsahil/AmaBakeryPos/internal/session"
)

const (
	tokenPath   = "/api/token/"
	refreshPath = "/api/token/refresh/"
)

// Client is the API client for the AmaBakery backend. Every domain call
// passes through Request, which attaches the current access token, always
// sends cookies, and recovers from an expired token exactly once.
type Client struct {
	baseURL    string
	refreshURL *url.URL
	httpClient *http.Client
	session    *session.Store
	cookiePath string

	refresh singleflight.Group

	mu           sync.Mutex
	unauthorized []func()
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string
	// Session owns the access token. Required.
	Session *session.Store
	// CookiePath is the file used to persist the refresh cookie between
	// console invocations. Empty disables persistence.
	CookiePath string
	// HTTPClient overrides the default client (tests). A cookie jar is
	// installed if the client has none.
	HTTPClient *http.Client
}

// New creates a client. Saved session cookies, if any, are loaded into the
// jar so a previous login can be resumed via Bootstrap.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("Session is required")
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	refreshURL, err := url.Parse(base + refreshPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	c := &Client{
		baseURL:    base,
		refreshURL: refreshURL,
		httpClient: httpClient,
		session:    cfg.Session,
		cookiePath: cfg.CookiePath,
	}
	c.loadCookies()
	return c, nil
}

// Session returns the session store owning the access token.
func (c *Client) Session() *session.Store {
	return c.session
}

// OnUnauthorized registers a callback invoked when a 401 could not be
// recovered by a refresh. Callbacks run synchronously on the failing call's
// goroutine; hosts use this to force a sign-out.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = append(c.unauthorized, fn)
}

func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	fns := make([]func(), len(c.unauthorized))
	copy(fns, c.unauthorized)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Do issues an authenticated JSON request. See Request.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.Request(ctx, method, path, body, nil)
}

// Request issues a request through the authenticated choke point.
//
// The target is baseURL+path unless path already carries a scheme. Headers
// default to JSON content and merge with the caller's overrides. When a
// token is held it is attached as a Bearer credential; cookies always ride
// along because the refresh exchange depends on a server-set cookie.
//
// A 401 on any path except the token-issuance endpoint triggers one refresh
// followed by one retry carrying the just-refreshed token. If the refresh
// fails, the original 401 response is returned and registered unauthorized
// callbacks fire. There is never more than one retry per call.
func (c *Client) Request(ctx context.Context, method, path string, body any, header http.Header) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload, header, c.session.AccessToken())
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || path == tokenPath {
		return resp, nil
	}

	token, err := c.RefreshAccessToken(ctx)
	if err != nil {
		slog.Debug("token refresh failed, returning original 401", "path", path, "error", err)
		c.notifyUnauthorized()
		return resp, nil
	}

	return c.send(ctx, method, path, payload, header, token)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, header http.Header, token string) (*Response, error) {
	target := path
	if !strings.Contains(path, "://") {
		target = c.baseURL + path
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}

// requestError converts context errors to user-friendly messages.
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// RefreshAccessToken exchanges the refresh cookie for a new access token.
// Concurrent callers racing against the same expired token are coalesced
// behind a single exchange; each receives the same result. On rejection the
// token store is cleared and a SessionExpiredError is returned.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.session.Clear()
		c.saveCookies()
		return "", &SessionExpiredError{}
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Access == "" {
		c.session.Clear()
		c.saveCookies()
		return "", &SessionExpiredError{}
	}

	c.session.SetAccessToken(body.Access)
	c.saveCookies()
	return body.Access, nil
}

// Bootstrap silently re-establishes a session from a saved refresh cookie
// before any command runs. Failure is not an error: the user is simply not
// logged in.
func (c *Client) Bootstrap(ctx context.Context) {
	if len(c.httpClient.Jar.Cookies(c.refreshURL)) == 0 {
		return
	}
	if _, err := c.RefreshAccessToken(ctx); err != nil {
		slog.Debug("session bootstrap failed", "error", err)
	}
}
