// ABOUTME: Server-computed dashboard and report figures
// ABOUTME: The console displays these numbers; it never recomputes them

package client

import (
	"context"
	"fmt"
	"net/http"
)

// TopSellingItem is one row of the best-sellers table.
type TopSellingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total,omitempty"`
}

// CategorySales is one slice of the sales-by-category breakdown.
type CategorySales struct {
	Category string  `json:"category"`
	Total    string  `json:"total"`
	Percent  float64 `json:"percent,omitempty"`
}

// DashboardDetails is the branch dashboard snapshot.
type DashboardDetails struct {
	TodaySales      float64          `json:"today_sales"`
	SalesPercent    float64          `json:"sales_percent"`
	TotalOrders     int              `json:"total_orders"`
	OrderPercent    float64          `json:"order_percent"`
	AvgOrders       float64          `json:"avg_orders"`
	PeakHours       []string         `json:"peak_hours,omitempty"`
	TopSellingItems []TopSellingItem `json:"top_selling_items,omitempty"`
	SalesByCategory []CategorySales  `json:"sales_by_category,omitempty"`
}

// ReportDashboard is the company-wide report snapshot.
type ReportDashboard struct {
	TotalSales        float64            `json:"total_sales"`
	TotalBranch       int                `json:"total_branch"`
	TotalUser         int                `json:"total_user"`
	TotalCountOrder   int                `json:"total_count_order"`
	AverageOrderValue float64            `json:"average_order_value"`
	WeeklySales       map[string]float64 `json:"weekly_sales,omitempty"`
}

// StaffFigure is one staff member's performance row.
type StaffFigure struct {
	UserID      int64   `json:"user_id"`
	Username    string  `json:"username"`
	Role        string  `json:"role,omitempty"`
	OrdersTaken int     `json:"orders_taken"`
	TotalSales  float64 `json:"total_sales"`
}

// branchScopedPath appends the optional branch id segment. branchID 0 means
// the caller's full scope.
func branchScopedPath(base string, branchID int64) string {
	if branchID > 0 {
		return fmt.Sprintf("%s%d/", base, branchID)
	}
	return base
}

// DashboardDetails fetches the live dashboard figures.
func (c *Client) DashboardDetails(ctx context.Context, branchID int64) (*DashboardDetails, error) {
	path := branchScopedPath("/api/calculate/dashboard-details/", branchID)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out DashboardDetails
	if err := c.decode(resp, &out, "Failed to fetch dashboard details"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportDashboard fetches the aggregate report figures.
func (c *Client) ReportDashboard(ctx context.Context, branchID int64) (*ReportDashboard, error) {
	path := branchScopedPath("/api/calculate/report-dashboard/", branchID)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out ReportDashboard
	if err := c.decode(resp, &out, "Failed to fetch report dashboard"); err != nil {
		return nil, err
	}
	return &out, nil
}

// StaffReport fetches per-staff performance figures.
func (c *Client) StaffReport(ctx context.Context, branchID int64) ([]StaffFigure, error) {
	path := branchScopedPath("/api/calculate/staff-report/", branchID)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var env envelope[[]StaffFigure]
	if err := c.decode(resp, &env, "Failed to fetch staff report"); err != nil {
		return nil, err
	}
	return env.Data, nil
}
