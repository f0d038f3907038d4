// ABOUTME: Branch resource operations
// ABOUTME: Thin wrappers over /api/branch/ with envelope unwrapping

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Branch is one bakery location. Revenue is a read-only decimal string.
type Branch struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Revenue     string `json:"revenue,omitempty"`
	ManagerName string `json:"manager_name,omitempty"`
}

// BranchInput carries fields for creating or updating a branch.
type BranchInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ListBranches returns all branches (superadmin scope).
func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/branch/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Branch]
	if err := c.decode(resp, &env, "Failed to fetch branches"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetBranch returns one branch.
func (c *Client) GetBranch(ctx context.Context, id int64) (*Branch, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/branch/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[Branch]
	if err := c.decode(resp, &env, "Failed to fetch branch"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateBranch opens a new branch.
func (c *Client) CreateBranch(ctx context.Context, input BranchInput) (*Branch, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/branch/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Branch]
	if err := c.decode(resp, &env, "Failed to create branch"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateBranch updates a branch.
func (c *Client) UpdateBranch(ctx context.Context, id int64, input BranchInput) (*Branch, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/branch/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Branch]
	if err := c.decode(resp, &env, "Failed to update branch"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteBranch closes a branch.
func (c *Client) DeleteBranch(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/branch/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete branch")
}
