// ABOUTME: Invoice and payment resource operations
// ABOUTME: Thin wrappers over /api/invoice/ and its payments subresource

package client

import (
	"context"
	"fmt"
	"net/http"
)

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ID          int64  `json:"id,omitempty"`
	ProductID   int64  `json:"product"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price,omitempty"`
}

// Invoice is an order. PaymentStatus is PENDING, PAID or CANCELLED;
// InvoiceStatus tracks the kitchen flow (new, preparing, ready, completed).
type Invoice struct {
	ID            int64         `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    *int64        `json:"customer,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	TableID       *int64        `json:"table,omitempty"`
	Items         []InvoiceItem `json:"items,omitempty"`
	TaxAmount     string        `json:"tax_amount,omitempty"`
	Discount      string        `json:"discount,omitempty"`
	Total         string        `json:"total,omitempty"`
	PaymentStatus string        `json:"payment_status"`
	InvoiceStatus string        `json:"invoice_status"`
	Notes         string        `json:"notes,omitempty"`
	Description   string        `json:"description,omitempty"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     string        `json:"created_at,omitempty"`
}

// InvoiceInput carries fields for creating an invoice.
type InvoiceInput struct {
	CustomerID *int64        `json:"customer,omitempty"`
	TableID    *int64        `json:"table,omitempty"`
	Items      []InvoiceItem `json:"items"`
	TaxAmount  string        `json:"tax_amount,omitempty"`
	Discount   string        `json:"discount,omitempty"`
	Notes      string        `json:"notes,omitempty"`
}

// InvoiceUpdate carries the fields the backend allows changing after
// creation. Paid and cancelled invoices reject modification server-side.
type InvoiceUpdate struct {
	Notes         *string `json:"notes,omitempty"`
	Description   *string `json:"description,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	InvoiceStatus *string `json:"invoice_status,omitempty"`
	TaxAmount     *string `json:"tax_amount,omitempty"`
	Discount      *string `json:"discount,omitempty"`
}

// Payment is a settlement against an invoice.
type Payment struct {
	ID             int64  `json:"id"`
	Invoice        int64  `json:"invoice"`
	InvoiceNumber  string `json:"invoice_number,omitempty"`
	Amount         string `json:"amount"`
	PaymentMethod  string `json:"payment_method"`
	TransactionID  string `json:"transaction_id,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PaymentDate    string `json:"payment_date,omitempty"`
	ReceivedBy     *int64 `json:"received_by,omitempty"`
	ReceivedByName string `json:"received_by_name,omitempty"`
}

// PaymentInput carries fields for recording a payment.
type PaymentInput struct {
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// ListInvoices returns invoices visible to the caller.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/invoice/", nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Invoice]
	if err := c.decode(resp, &env, "Failed to fetch invoices"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetInvoice returns one invoice with its items.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/invoice/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[Invoice]
	if err := c.decode(resp, &env, "Failed to fetch invoice"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateInvoice opens a new order.
func (c *Client) CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/invoice/", input)
	if err != nil {
		return nil, err
	}
	var env envelope[Invoice]
	if err := c.decode(resp, &env, "Failed to create invoice"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateInvoice patches the mutable invoice fields.
func (c *Client) UpdateInvoice(ctx context.Context, id int64, input InvoiceUpdate) (*Invoice, error) {
	resp, err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/api/invoice/%d/", id), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Invoice]
	if err := c.decode(resp, &env, "Failed to update invoice"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteInvoice voids an unpaid invoice.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/invoice/%d/", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nil, "Failed to delete invoice")
}

// ListPayments returns the payments recorded against an invoice.
func (c *Client) ListPayments(ctx context.Context, invoiceID int64) ([]Payment, error) {
	resp, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/invoice/%d/payments/", invoiceID), nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]Payment]
	if err := c.decode(resp, &env, "Failed to fetch payments"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// AddPayment records a payment against an invoice.
func (c *Client) AddPayment(ctx context.Context, invoiceID int64, input PaymentInput) (*Payment, error) {
	resp, err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/invoice/%d/payments/", invoiceID), input)
	if err != nil {
		return nil, err
	}
	var env envelope[Payment]
	if err := c.decode(resp, &env, "Failed to record payment"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
