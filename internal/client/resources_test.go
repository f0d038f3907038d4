// ABOUTME: Tests for domain operation wrappers
// ABOUTME: Verifies paths, envelope unwrapping and fallback error messages

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListProductsUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/" {
			t.Errorf("expected path /api/products/, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"count":   2,
			"data": []map[string]any{
				{"id": 1, "name": "Sourdough", "price": "450.00", "category": 3, "stock": 12, "is_active": true},
				{"id": 2, "name": "Croissant", "price": "180.00", "category": 3, "stock": 40, "is_active": true},
			},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Sourdough" || products[0].Price != "450.00" {
		t.Errorf("unexpected first product: %+v", products[0])
	}
}

func TestGetInvoicePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/invoice/42/" {
			t.Errorf("expected path /api/invoice/42/, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id": 42, "invoice_number": "INV-0042",
				"payment_status": "PENDING", "invoice_status": "preparing",
				"items": []map[string]any{{"id": 1, "product": 7, "product_name": "Bagel", "quantity": 3}},
			},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	inv, err := c.GetInvoice(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceNumber != "INV-0042" || inv.InvoiceStatus != "preparing" {
		t.Errorf("unexpected invoice: %+v", inv)
	}
	if len(inv.Items) != 1 || inv.Items[0].ProductName != "Bagel" {
		t.Errorf("unexpected items: %+v", inv.Items)
	}
}

func TestAddItemActivityRejectsBadType(t *testing.T) {
	c, _ := newTestClient(t, "http://unreachable.invalid")
	if _, err := c.AddItemActivity(context.Background(), 7, "destroy", ItemActivityInput{Quantity: 1}); err == nil {
		t.Error("expected validation error for bad activity type")
	}
}

func TestAddItemActivityPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/itemactivity/7/reduce/" {
			t.Errorf("expected path /api/itemactivity/7/reduce/, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": 1, "product": 7, "type": "reduce", "quantity": 5},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	act, err := c.AddItemActivity(context.Background(), 7, "reduce", ItemActivityInput{Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act.Quantity != 5 || act.Type != "reduce" {
		t.Errorf("unexpected activity: %+v", act)
	}
}

func TestChangePasswordSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Old password is incorrect"})
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")
	err := c.ChangePassword(context.Background(), "old", "new")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Old password is incorrect" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestReportPathsBranchScope(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"today_sales": 1200.50, "total_orders": 18})
	}))
	defer server.Close()

	c, _ := newTestClient(t, server.URL)
	if _, err := c.DashboardDetails(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.DashboardDetails(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths[0] != "/api/calculate/dashboard-details/" {
		t.Errorf("unexpected unscoped path %s", paths[0])
	}
	if paths[1] != "/api/calculate/dashboard-details/3/" {
		t.Errorf("unexpected scoped path %s", paths[1])
	}
}

func TestDeleteUserFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("forbidden"))
	}))
	defer server.Close()

	c, store := newTestClient(t, server.URL)
	store.SetAccessToken("T1")
	err := c.DeleteUser(context.Background(), 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Failed to delete user" {
		t.Errorf("expected operation fallback, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 carried, got %d", apiErr.StatusCode)
	}
}
