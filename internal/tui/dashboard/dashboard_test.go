// ABOUTME: Tests for the live dashboard model
// ABOUTME: Checks snapshot rendering and live update folding

package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
	"github.com/Acrsahil/AmaBakeryPos/internal/realtime"
)

type fakeBackend struct {
	details *client.DashboardDetails
	err     error
}

func (f *fakeBackend) DashboardDetails(ctx context.Context, branchID int64) (*client.DashboardDetails, error) {
	return f.details, f.err
}

func newTestModel(backend Backend) *Model {
	updates := make(chan realtime.DashboardUpdate)
	states := make(chan realtime.State)
	return New(backend, 0, updates, states)
}

func TestDashboardRendersSnapshot(t *testing.T) {
	details := &client.DashboardDetails{
		TodaySales:   1250.5,
		SalesPercent: 12.3,
		TotalOrders:  18,
		OrderPercent: -4.0,
		AvgOrders:    6.2,
		PeakHours:    []string{"08:00", "12:00"},
		TopSellingItems: []client.TopSellingItem{
			{Name: "Croissant", Quantity: 42},
		},
		SalesByCategory: []client.CategorySales{
			{Category: "Pastry", Total: "800.00"},
		},
	}
	m := newTestModel(&fakeBackend{details: details})
	m.Update(detailsLoadedMsg{details: details})

	view := m.View()
	for _, want := range []string{"1250.50", "18", "Croissant", "Pastry", "08:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDashboardRendersError(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.Update(detailsLoadedMsg{err: errors.New("Failed to fetch dashboard details")})

	if !strings.Contains(m.View(), "Failed to fetch dashboard details") {
		t.Error("error missing from view")
	}
}

func TestDashboardFoldsLiveUpdate(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.Update(detailsLoadedMsg{details: &client.DashboardDetails{
		TodaySales:  1000,
		TotalOrders: 10,
		AvgOrders:   5,
	}})

	m.Update(updateMsg(realtime.DashboardUpdate{TodaySales: 1100, SalesPercent: 10}))

	if m.details.TodaySales != 1100 {
		t.Errorf("today sales = %v after update", m.details.TodaySales)
	}
	// Sparse update: untouched figures survive.
	if m.details.TotalOrders != 10 || m.details.AvgOrders != 5 {
		t.Errorf("sparse update clobbered figures: %+v", m.details)
	}
}

func TestDashboardUpdateBeforeSnapshot(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.loading = false

	m.Update(updateMsg(realtime.DashboardUpdate{TotalOrders: 3, OrderPercent: 1.5}))

	if m.details == nil || m.details.TotalOrders != 3 {
		t.Errorf("details = %+v after update with no snapshot", m.details)
	}
}

func TestDashboardStreamStateBadge(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.Update(detailsLoadedMsg{details: &client.DashboardDetails{}})

	m.Update(streamStateMsg(realtime.StateNoToken))
	if !strings.Contains(m.View(), "not authenticated") {
		t.Error("no-token state not surfaced")
	}

	m.Update(streamStateMsg(realtime.StateOpen))
	if !strings.Contains(m.View(), "live") {
		t.Error("open stream not shown as live")
	}
}
