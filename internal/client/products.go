// ABOUTME: Product and category resource operations
// ABOUTME: Thin wrappers over /api/products/ and /api/category/

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Product is a menu item. Price is a decimal string as serialized by the
// backend; the console displays it without arithmetic.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	CategoryID   int64  `json:"category"`
	CategoryName string `json:"category_name,omitempty"`
	BranchID     *int64 `json:"branch,omitempty"`
	Stock        int    `json:"stock"`
	IsActive     bool   `json:"is_active"`
}

// ProductInput carries fields for creating or updating a product.
type ProductInput struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID int64  `json:"category"`
	BranchID   *int64 `json:"branch,omitempty"`
	Stock      *int   `json:"stock,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// Category groups products on the menu.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BranchID *int64 `json:"branch,omitempty"`
}

// CategoryInput carries fields for creating or updating a category.
type CategoryInput struct {
	Name     string `json:"name"`
	BranchID *int64 `json:"branch,omitempty"`
}

// ListProducts returns the menu.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/products/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Product]
	if err := c.decode(resp, &env, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetProduct returns one product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[Product]
	if err := c.decode(resp, &env, "Failed to fetch product"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateProduct adds a product to the menu.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/products/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Product]
	if err := c.decode(resp, &env, "Failed to create product"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateProduct updates a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Product]
	if err := c.decode(resp, &env, "Failed to update product"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete product")
}

// ListCategories returns all menu categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/category/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Category]
	if err := c.decode(resp, &env, "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateCategory adds a menu category.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/category/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Category]
	if err := c.decode(resp, &env, "Failed to create category"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateCategory renames or moves a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/category/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Category]
	if err := c.decode(resp, &env, "Failed to update category"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/category/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete category")
}
