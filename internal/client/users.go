// ABOUTME: Staff user resource operations
// ABOUTME: Thin wrappers over /api/users/ with envelope unwrapping

package client

import (
	"context"
	"fmt"
	"net/http"
)

// User is a staff account as returned by the backend.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"user_type"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	IsActive    bool   `json:"is_active"`
	BranchID    *int64 `json:"branch_id,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
}

// UserInput carries fields for creating or updating a staff account.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"user_type"`
	BranchID *int64 `json:"branch_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ListUsers returns all staff accounts visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/users/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]User]
	if err := c.decode(resp, &env, "Failed to fetch users"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetUser returns one staff account.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[User]
	if err := c.decode(resp, &env, "Failed to fetch user"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateUser creates a staff account.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/users/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[User]
	if err := c.decode(resp, &env, "Failed to create user"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateUser updates a staff account.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (*User, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[User]
	if err := c.decode(resp, &env, "Failed to update user"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete user")
}
