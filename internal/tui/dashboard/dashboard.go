// ABOUTME: Live sales dashboard fed by the SSE stream
// ABOUTME: Renders today's figures, best sellers, and category breakdown

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Acrsahil/AmaBakeryPos/internal/client"
	"github.com/Acrsahil/AmaBakeryPos/internal/realtime"
	"github.com/Acrsahil/AmaBakeryPos/internal/tui/styles"
)

// Backend is the slice of the API client the dashboard needs.
type Backend interface {
	DashboardDetails(ctx context.Context, branchID int64) (*client.DashboardDetails, error)
}

// detailsLoadedMsg is sent when the initial snapshot fetch completes.
type detailsLoadedMsg struct {
	details *client.DashboardDetails
	err     error
}

// updateMsg wraps one live dashboard update.
type updateMsg realtime.DashboardUpdate

// streamStateMsg reports a stream state change.
type streamStateMsg realtime.State

// Model is the live dashboard.
type Model struct {
	backend  Backend
	branchID int64
	updates  <-chan realtime.DashboardUpdate
	states   <-chan realtime.State

	details *client.DashboardDetails
	conn    realtime.State
	spinner spinner.Model
	loading bool
	err     error
	width   int
}

// New builds the dashboard. updates and states are fed by the SSE stream;
// the caller owns the stream lifecycle.
func New(backend Backend, branchID int64, updates <-chan realtime.DashboardUpdate, states <-chan realtime.State) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Model{
		backend:  backend,
		branchID: branchID,
		updates:  updates,
		states:   states,
		conn:     realtime.StateConnecting,
		spinner:  sp,
		loading:  true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadDetails(),
		m.waitForUpdate(),
		m.waitForState(),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadDetails()
		}
		return m, nil

	case detailsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.details = msg.details
		return m, nil

	case updateMsg:
		m.applyUpdate(realtime.DashboardUpdate(msg))
		return m, m.waitForUpdate()

	case streamStateMsg:
		m.conn = realtime.State(msg)
		return m, m.waitForState()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) loadDetails() tea.Cmd {
	return func() tea.Msg {
		details, err := m.backend.DashboardDetails(context.Background(), m.branchID)
		return detailsLoadedMsg{details: details, err: err}
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.updates
		if !ok {
			return nil
		}
		return updateMsg(u)
	}
}

func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.states
		if !ok {
			return nil
		}
		return streamStateMsg(st)
	}
}

// applyUpdate folds live figures into the snapshot. The stream sends only
// the figures that changed, so zero values must not clobber known data.
func (m *Model) applyUpdate(u realtime.DashboardUpdate) {
	if m.details == nil {
		m.details = &client.DashboardDetails{}
	}
	if u.TodaySales != 0 {
		m.details.TodaySales = u.TodaySales
		m.details.SalesPercent = u.SalesPercent
	}
	if u.TotalOrders != 0 {
		m.details.TotalOrders = u.TotalOrders
		m.details.OrderPercent = u.OrderPercent
	}
	if u.AvgOrders != 0 {
		m.details.AvgOrders = u.AvgOrders
	}
	if len(u.PeakHours) > 0 {
		m.details.PeakHours = u.PeakHours
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Sales Dashboard"))
	sb.WriteString("  ")
	sb.WriteString(m.connBadge())
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading dashboard...\n")
	case m.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	case m.details == nil:
		sb.WriteString(styles.Subtitle.Render("No data yet"))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.renderMetrics())
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("r Refresh  q Quit"))
	return sb.String()
}

func (m *Model) renderMetrics() string {
	d := m.details
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Today's Sales: %s  %s\n",
		styles.ValueStyle.Render(fmt.Sprintf("%.2f", d.TodaySales)),
		styles.Trend(d.SalesPercent)))
	sb.WriteString(fmt.Sprintf("Orders: %s  %s\n",
		styles.ValueStyle.Render(fmt.Sprintf("%d", d.TotalOrders)),
		styles.Trend(d.OrderPercent)))
	sb.WriteString(fmt.Sprintf("Avg Orders: %s\n", styles.ValueStyle.Render(fmt.Sprintf("%.1f", d.AvgOrders))))
	if len(d.PeakHours) > 0 {
		sb.WriteString(fmt.Sprintf("Peak Hours: %s\n", strings.Join(d.PeakHours, ", ")))
	}

	if len(d.TopSellingItems) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Top Sellers"))
		sb.WriteString("\n")
		for _, item := range d.TopSellingItems {
			sb.WriteString(fmt.Sprintf("  %-24s %d\n", item.Name, item.Quantity))
		}
	}

	if len(d.SalesByCategory) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Sales by Category"))
		sb.WriteString("\n")
		for _, cat := range d.SalesByCategory {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", cat.Category, cat.Total))
		}
	}

	return sb.String()
}

func (m *Model) connBadge() string {
	switch m.conn {
	case realtime.StateOpen:
		return styles.StatusOK.Render("● live")
	case realtime.StateConnecting:
		return styles.StatusWarning.Render("● connecting")
	case realtime.StateNoToken:
		return styles.StatusCritical.Render("● not authenticated")
	default:
		return styles.StatusCritical.Render("● offline")
	}
}
