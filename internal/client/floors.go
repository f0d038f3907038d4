// ABOUTME: Floor and table layout operations
// ABOUTME: Thin wrappers over /api/floor/ with envelope unwrapping

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Table is one seat group on a floor.
type Table struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Seats  int    `json:"seats"`
	Status string `json:"status,omitempty"`
	Floor  int64  `json:"floor"`
}

// Floor is one level of the restaurant with its tables.
type Floor struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Branch *int64  `json:"branch,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// FloorInput carries fields for creating or updating a floor layout.
type FloorInput struct {
	Name   string  `json:"name"`
	Branch *int64  `json:"branch,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// ListFloors returns the floor layout with tables.
func (c *Client) ListFloors(ctx context.Context) ([]Floor, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/floor/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Floor]
	if err := c.decode(resp, &env, "Failed to fetch floors"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateFloor adds a floor.
func (c *Client) CreateFloor(ctx context.Context, input FloorInput) (*Floor, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/floor/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Floor]
	if err := c.decode(resp, &env, "Failed to create floor"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateFloor updates a floor and its tables.
func (c *Client) UpdateFloor(ctx context.Context, id int64, input FloorInput) (*Floor, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/floor/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Floor]
	if err := c.decode(resp, &env, "Failed to update floor"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteFloor removes a floor.
func (c *Client) DeleteFloor(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/floor/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete floor")
}
