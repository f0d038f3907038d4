// ABOUTME: Item stock activity operations (add/reduce and history)
// ABOUTME: Thin wrappers over /api/itemactivity/

package client

import (
	"context"
	"fmt"
	"net/http"
)

// ItemActivity is one stock movement for a product.
type ItemActivity struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
}

// ItemActivityInput carries one stock adjustment.
type ItemActivityInput struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// AddItemActivity records a stock movement. activityType is "add" or
// "reduce"; any other value is rejected before hitting the network.
func (c *Client) AddItemActivity(ctx context.Context, productID int64, activityType string, input ItemActivityInput) (*ItemActivity, error) {
	if activityType != "add" && activityType != "reduce" {
		return nil, fmt.Errorf("activity type must be add or reduce, got %q", activityType)
	}
	resp, err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/itemactivity/%d/%s/", productID, activityType), input)
	if err != nil {
		return nil, err
	}
	var env envelope[ItemActivity]
	if err := c.decode(resp, &env, "Failed to modify product"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ItemActivityDetail returns the stock movement history for a product.
func (c *Client) ItemActivityDetail(ctx context.Context, productID int64) ([]ItemActivity, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/itemactivity/%d/detail/", productID), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]ItemActivity]
	if err := c.decode(resp, &env, "Failed to fetch item activity"); err != nil {
		return nil, err
	}
	return env.Data, nil
}
