// ABOUTME: Server-sent events stream for live dashboard metrics
// ABOUTME: Parses named events, skips heartbeat comments, reconnects on drop

package realtime

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const streamReconnectDelay = 5 * time.Second

// maxEventSize bounds one SSE data line; dashboard payloads are small but
// the default bufio line limit of 64K is tight for busy days.
const maxEventSize = 512 * 1024

// DashboardUpdate is the payload of a dashboard_update event. Fields are
// sparse: the backend sends whichever figures changed for the scope.
type DashboardUpdate struct {
	Success           bool               `json:"success"`
	TodaySales        float64            `json:"today_sales"`
	SalesPercent      float64            `json:"sales_percent"`
	TotalOrders       int                `json:"total_orders"`
	OrderPercent      float64            `json:"order_percent"`
	AvgOrders         float64            `json:"avg_orders"`
	PeakHours         []string           `json:"peak_hours,omitempty"`
	TopSellingItems   json.RawMessage    `json:"top_selling_items,omitempty"`
	SalesByCategory   json.RawMessage    `json:"sales_by_category,omitempty"`
	TotalSales        float64            `json:"total_sales"`
	TotalBranch       int                `json:"total_branch"`
	TotalUser         int                `json:"total_user"`
	TotalCountOrder   int                `json:"total_count_order"`
	AverageOrderValue float64            `json:"average_order_value"`
	WeeklySales       map[string]float64 `json:"weekly_sales,omitempty"`
	UpdateType        string             `json:"update_type,omitempty"`
}

// DashboardStream is a receive-only event stream from
// /api/dashboard/stream/, scoped by branch and authenticated by token
// query parameter.
type DashboardStream struct {
	baseURL    string
	branchID   int64
	token      func() string
	onUpdate   func(DashboardUpdate)
	httpClient *http.Client
	delay      time.Duration
	timer      reconnectTimer

	mu          sync.Mutex
	body        io.Closer
	state       State
	onState     func(State)
	onConnected func()
	done        bool
}

// NewDashboardStream builds a stream. branchID 0 means the caller's full
// scope; onUpdate receives every parsed dashboard_update payload.
func NewDashboardStream(baseURL string, branchID int64, token func() string, onUpdate func(DashboardUpdate)) *DashboardStream {
	return &DashboardStream{
		baseURL:  strings.TrimRight(baseURL, "/"),
		branchID: branchID,
		token:    token,
		onUpdate: onUpdate,
		// No overall timeout: the stream is long-lived by design.
		httpClient: &http.Client{},
		delay:      streamReconnectDelay,
		state:      StateClosed,
	}
}

// OnStateChange registers a state observer. Must be called before Connect.
func (d *DashboardStream) OnStateChange(fn func(State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onState = fn
}

// OnConnected registers a handler for the server's connected event.
func (d *DashboardStream) OnConnected(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onConnected = fn
}

// State returns the current connection state.
func (d *DashboardStream) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Connect opens the event stream. No token is terminal; any transport or
// status failure schedules a reconnect after the fixed delay.
func (d *DashboardStream) Connect() {
	d.mu.Lock()
	if d.done || d.body != nil {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	tok := d.token()
	if tok == "" {
		d.setState(StateNoToken)
		return
	}

	d.setState(StateConnecting)

	params := url.Values{}
	if d.branchID > 0 {
		params.Set("branch_id", strconv.FormatInt(d.branchID, 10))
	}
	params.Set("token", tok)
	target := d.baseURL + "/api/dashboard/stream/?" + params.Encode()

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		slog.Debug("dashboard stream request failed", "error", err)
		d.scheduleReconnect()
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		slog.Debug("dashboard stream connect failed", "error", err)
		d.scheduleReconnect()
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		slog.Debug("dashboard stream rejected", "status", resp.StatusCode)
		d.scheduleReconnect()
		return
	}

	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		resp.Body.Close()
		return
	}
	d.body = resp.Body
	d.mu.Unlock()

	d.timer.Stop()
	d.setState(StateOpen)
	go d.readLoop(resp.Body)
}

// Close tears the stream down and cancels any pending reconnect.
func (d *DashboardStream) Close() {
	d.mu.Lock()
	d.done = true
	body := d.body
	d.body = nil
	d.mu.Unlock()

	d.timer.Stop()
	if body != nil {
		body.Close()
	}
	d.setState(StateClosed)
}

func (d *DashboardStream) readLoop(body io.ReadCloser) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var event string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			d.dispatch(event, data.String())
			event = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// Heartbeat comment, keeps the connection alive.
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	body.Close()
	d.mu.Lock()
	if d.body == body {
		d.body = nil
	}
	done := d.done
	d.mu.Unlock()

	if done {
		return
	}
	d.scheduleReconnect()
}

func (d *DashboardStream) dispatch(event, data string) {
	switch event {
	case "connected":
		slog.Debug("dashboard stream connected", "data", data)
		d.mu.Lock()
		fn := d.onConnected
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
	case "dashboard_update":
		var update DashboardUpdate
		if err := json.Unmarshal([]byte(data), &update); err != nil {
			// Bad payload: drop it, the stream stays open.
			slog.Debug("discarding malformed dashboard update", "error", err)
			return
		}
		d.onUpdate(update)
	}
}

func (d *DashboardStream) scheduleReconnect() {
	d.setState(StateClosed)
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done {
		return
	}
	d.timer.Schedule(d.delay, d.Connect)
}

func (d *DashboardStream) setState(s State) {
	d.mu.Lock()
	d.state = s
	fn := d.onState
	d.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
