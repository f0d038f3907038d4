// ABOUTME: Authentication operations: login, logout, profile, password changes
// ABOUTME: Login stores the access token; the refresh credential stays in the cookie jar

package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// tokenResponse is the token-issuance body. Refresh historically also came
// in-body; it now arrives as an HttpOnly cookie and the field is ignored.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for an access token. On success the token is
// stored and the server-set refresh cookie is persisted for later
// invocations. A 401 here is a bad password, never a refresh trigger.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.Do(ctx, http.MethodPost, tokenPath, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return resp.apiError("Invalid username or password")
	}

	var body tokenResponse
	if err := resp.JSON(&body); err != nil {
		return err
	}
	if body.Access == "" {
		return fmt.Errorf("login response missing access token")
	}

	c.session.SetAccessToken(body.Access)
	c.saveCookies()
	return nil
}

// Logout ends the session. The server call invalidating the refresh cookie
// is best-effort: a network failure is logged and swallowed because the
// local requirement is to stop using the session regardless.
func (c *Client) Logout(ctx context.Context) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/logout/", nil)
	if err != nil {
		slog.Warn("server-side logout failed", "error", err)
	} else if !resp.OK() {
		slog.Warn("server-side logout rejected", "status", resp.StatusCode)
	}

	c.session.Clear()
	c.saveCookies()
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/me/", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.decode(resp, &user, "Failed to fetch user profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the logged-in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := c.Do(ctx, http.MethodPost, "/api/change-password/", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to change password")
}

// AdminResetPassword sets a new password for another user (admin only).
func (c *Client) AdminResetPassword(ctx context.Context, userID int64, newPassword string) error {
	resp, err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/admin-reset-password/%d/", userID), map[string]string{
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to reset password")
}
