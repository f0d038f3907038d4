// ABOUTME: Persists the refresh cookie between console invocations
// ABOUTME: Only name/value pairs for the refresh endpoint are written, mode 0600

package client

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// savedCookie is the persisted form of a jar entry. Expiry is not stored;
// the server re-validates the cookie on every refresh exchange anyway.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// loadCookies restores previously saved cookies into the jar so the refresh
// exchange can resume a prior session.
func (c *Client) loadCookies() {
	if c.cookiePath == "" {
		return
	}
	raw, err := os.ReadFile(c.cookiePath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("could not read saved session", "path", c.cookiePath, "error", err)
		}
		return
	}
	var saved []savedCookie
	if err := json.Unmarshal(raw, &saved); err != nil {
		slog.Debug("discarding unreadable saved session", "path", c.cookiePath, "error", err)
		return
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, sc := range saved {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	c.httpClient.Jar.SetCookies(c.refreshURL, cookies)
}

// saveCookies writes the jar's view of the refresh endpoint to disk. An
// empty jar removes the file, so a server-side cookie deletion on logout or
// rejected refresh also forgets the saved session.
func (c *Client) saveCookies() {
	if c.cookiePath == "" {
		return
	}

	cookies := c.httpClient.Jar.Cookies(c.refreshURL)
	if len(cookies) == 0 {
		if err := os.Remove(c.cookiePath); err != nil && !os.IsNotExist(err) {
			slog.Debug("could not remove saved session", "path", c.cookiePath, "error", err)
		}
		return
	}

	saved := make([]savedCookie, 0, len(cookies))
	for _, ck := range cookies {
		saved = append(saved, savedCookie{Name: ck.Name, Value: ck.Value})
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		slog.Debug("could not encode saved session", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.cookiePath), 0700); err != nil {
		slog.Debug("could not create config dir", "error", err)
		return
	}
	if err := os.WriteFile(c.cookiePath, raw, 0600); err != nil {
		slog.Debug("could not write saved session", "path", c.cookiePath, "error", err)
	}
}
