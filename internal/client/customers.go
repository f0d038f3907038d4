// ABOUTME: Customer resource operations
// ABOUTME: Thin wrappers over /api/customer/ with envelope unwrapping

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Customer is a customer record attached to a branch.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Date    string `json:"date,omitempty"`
	Branch  int64  `json:"branch"`
}

// CustomerInput carries fields for creating or updating a customer.
// Name and Branch are required by the backend.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Branch  int64  `json:"branch"`
}

// ListCustomers returns customer records visible to the caller.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/customer/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Customer]
	if err := c.decode(resp, &env, "Failed to fetch customers"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetCustomer returns one customer.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/customer/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[Customer]
	if err := c.decode(resp, &env, "Failed to fetch customer"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateCustomer adds a customer record.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/customer/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Customer]
	if err := c.decode(resp, &env, "Failed to create customer"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateCustomer updates a customer record.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*Customer, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/customer/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Customer]
	if err := c.decode(resp, &env, "Failed to update customer"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/customer/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete customer")
}
