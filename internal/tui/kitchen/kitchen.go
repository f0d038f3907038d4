// ABOUTME: Kitchen display board fed by the live orders channel
// ABOUTME: Shows open orders as cards and advances their status inline

package kitchen

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

// Backend is the slice of the API client the board needs.
type Backend interface {
	ListInvoices(ctx context.Context) ([]client.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, input client.InvoiceUpdate) (*client.Invoice, error)
}

// ordersLoadedMsg is sent when the initial invoice fetch completes.
type ordersLoadedMsg struct {
	invoices []client.Invoice
	err      error
}

// orderEventMsg wraps one live order event.
type orderEventMsg realtime.OrdersMessage

// channelStateMsg reports a connection state change.
type channelStateMsg realtime.State

// statusChangedMsg is sent when an inline status update completes.
type statusChangedMsg struct {
	invoice *client.Invoice
	err     error
}

// nextStatus is the kitchen flow: new -> preparing -> ready -> completed.
func nextStatus(status string) string {
	switch status {
	case "new":
		return "preparing"
	case "preparing":
		return "ready"
	case "ready":
		return "completed"
	default:
		return ""
	}
}

// Board is the kitchen display model.
type Board struct {
	backend Backend
	events  <-chan realtime.OrdersMessage
	states  <-chan realtime.State

	orders  []client.Invoice
	cursor  int
	conn    realtime.State
	spinner spinner.Model
	loading bool
	err     error
	notice  string
	width   int
	height  int
}

// New builds a board. events and states are fed by the orders channel; the
// caller owns the channel lifecycle.
func New(backend Backend, events <-chan realtime.OrdersMessage, states <-chan realtime.State) *Board {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Board{
		backend: backend,
		events:  events,
		states:  states,
		conn:    realtime.StateConnecting,
		spinner: sp,
		loading: true,
	}
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tea.Batch(
		b.spinner.Tick,
		b.loadOrders(),
		b.waitForEvent(),
		b.waitForState(),
	)
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit
		case "r":
			b.loading = true
			return b, b.loadOrders()
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
			return b, nil
		case "down", "j":
			if b.cursor < len(b.orders)-1 {
				b.cursor++
			}
			return b, nil
		case "enter":
			return b, b.advanceSelected()
		}
		return b, nil

	case ordersLoadedMsg:
		b.loading = false
		if msg.err != nil {
			b.err = msg.err
			return b, nil
		}
		b.err = nil
		b.orders = openOrders(msg.invoices)
		if b.cursor >= len(b.orders) {
			b.cursor = 0
		}
		return b, nil

	case orderEventMsg:
		b.applyEvent(realtime.OrdersMessage(msg))
		return b, b.waitForEvent()

	case channelStateMsg:
		b.conn = realtime.State(msg)
		return b, b.waitForState()

	case statusChangedMsg:
		if msg.err != nil {
			b.notice = msg.err.Error()
			return b, nil
		}
		b.notice = ""
		b.applyUpdate(msg.invoice)
		return b, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	}

	return b, nil
}

// loadOrders fetches the current invoices.
func (b *Board) loadOrders() tea.Cmd {
	return func() tea.Msg {
		invoices, err := b.backend.ListInvoices(context.Background())
		return ordersLoadedMsg{invoices: invoices, err: err}
	}
}

// waitForEvent blocks on the live channel for the next order event.
func (b *Board) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.events
		if !ok {
			return nil
		}
		return orderEventMsg(msg)
	}
}

// waitForState blocks for the next connection state change.
func (b *Board) waitForState() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-b.states
		if !ok {
			return nil
		}
		return channelStateMsg(st)
	}
}

// advanceSelected pushes the selected order to its next status.
func (b *Board) advanceSelected() tea.Cmd {
	if b.cursor >= len(b.orders) {
		return nil
	}
	order := b.orders[b.cursor]
	next := nextStatus(order.InvoiceStatus)
	if next == "" {
		return nil
	}
	return func() tea.Msg {
		inv, err := b.backend.UpdateInvoice(context.Background(), order.ID, client.InvoiceUpdate{
			InvoiceStatus: &next,
		})
		return statusChangedMsg{invoice: inv, err: err}
	}
}

// applyEvent folds a live event into the board. A status we don't know yet
// triggers nothing; the card updates in place when the invoice is present,
// and new orders prompt a refetch on the next manual refresh.
func (b *Board) applyEvent(msg realtime.OrdersMessage) {
	for i := range b.orders {
		if fmt.Sprintf("%d", b.orders[i].ID) == msg.InvoiceID || b.orders[i].InvoiceNumber == msg.InvoiceID {
			if msg.Status != "" {
				b.orders[i].InvoiceStatus = msg.Status
			}
			if msg.Status == "completed" {
				b.orders = append(b.orders[:i], b.orders[i+1:]...)
				if b.cursor >= len(b.orders) && b.cursor > 0 {
					b.cursor--
				}
			}
			return
		}
	}
	if msg.Type == "order_created" {
		// A new order we have not fetched: show a hint rather than guess
		// at fields the event does not carry.
		b.notice = "New order received. Press r to refresh."
	}
}

// applyUpdate replaces the stored invoice after an inline status change.
func (b *Board) applyUpdate(inv *client.Invoice) {
	if inv == nil {
		return
	}
	for i := range b.orders {
		if b.orders[i].ID == inv.ID {
			if inv.InvoiceStatus == "completed" {
				b.orders = append(b.orders[:i], b.orders[i+1:]...)
				if b.cursor >= len(b.orders) && b.cursor > 0 {
					b.cursor--
				}
			} else {
				b.orders[i] = *inv
			}
			return
		}
	}
}

// openOrders filters out completed invoices; the board only shows work.
func openOrders(invoices []client.Invoice) []client.Invoice {
	open := make([]client.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.InvoiceStatus != "completed" && inv.IsActive {
			open = append(open, inv)
		}
	}
	return open
}

// View implements tea.Model.
func (b *Board) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Kitchen Board"))
	sb.WriteString("  ")
	sb.WriteString(b.connBadge())
	sb.WriteString("\n\n")

	switch {
	case b.loading:
		sb.WriteString(b.spinner.View())
		sb.WriteString(" Loading orders...\n")
	case b.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Error: " + b.err.Error()))
		sb.WriteString("\n")
	case len(b.orders) == 0:
		sb.WriteString(styles.Subtitle.Render("No open orders"))
		sb.WriteString("\n")
	default:
		for i, order := range b.orders {
			sb.WriteString(b.renderCard(order, i == b.cursor))
			sb.WriteString("\n")
		}
	}

	if b.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(b.notice))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("↑↓ Select  Enter Advance  r Refresh  q Quit"))
	return sb.String()
}

// renderCard formats one order card.
func (b *Board) renderCard(order client.Invoice, selected bool) string {
	var sb strings.Builder

	status := styles.OrderStatus(order.InvoiceStatus).Render(strings.ToUpper(order.InvoiceStatus))
	sb.WriteString(fmt.Sprintf("%s  %s", styles.ValueStyle.Render("#"+order.InvoiceNumber), status))
	if order.CustomerName != "" {
		sb.WriteString("  " + styles.Subtitle.Render(order.CustomerName))
	}
	sb.WriteString("\n")

	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("  %dx %s\n", item.Quantity, item.ProductName))
	}
	if order.Notes != "" {
		sb.WriteString(styles.Subtitle.Render("  Note: " + order.Notes))
		sb.WriteString("\n")
	}

	panel := styles.Panel
	if selected {
		panel = styles.ActivePanel
	}
	return panel.Render(strings.TrimRight(sb.String(), "\n"))
}

// connBadge renders the live channel state.
func (b *Board) connBadge() string {
	switch b.conn {
	case realtime.StateOpen:
		return styles.StatusOK.Render("● live")
	case realtime.StateConnecting:
		return styles.StatusWarning.Render("● connecting")
	default:
		return styles.StatusCritical.Render("● offline")
	}
}
