// ABOUTME: Duplex WebSocket channel for kitchen/counter order fan-out
// ABOUTME: Reconnects forever on drop with a fixed 3s delay

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const ordersReconnectDelay = 3 * time.Second

// OrdersMessage is one order event broadcast by the backend.
type OrdersMessage struct {
	Type      string `json:"type"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

// OrdersChannel is a persistent duplex connection to /ws/orders/.
// Handlers run on the read goroutine; they must not block.
type OrdersChannel struct {
	url     string
	handler func(OrdersMessage)
	dialer  *websocket.Dialer
	delay   time.Duration
	timer   reconnectTimer

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	onState func(State)
	done    bool
}

// NewOrdersChannel builds a channel against the backend base URL. handler
// receives every parsed order event.
func NewOrdersChannel(baseURL string, handler func(OrdersMessage)) *OrdersChannel {
	return &OrdersChannel{
		url:     wsBaseURL(baseURL) + "/ws/orders/",
		handler: handler,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		delay:   ordersReconnectDelay,
		state:   StateClosed,
	}
}

// OnStateChange registers a state observer. Must be called before Connect.
func (o *OrdersChannel) OnStateChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onState = fn
}

// State returns the current connection state.
func (o *OrdersChannel) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Connect dials the channel. On failure a reconnect is scheduled; on
// success the pending reconnect timer (if any) is cleared and a read loop
// starts delivering messages.
func (o *OrdersChannel) Connect() {
	o.mu.Lock()
	if o.done || o.conn != nil {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	o.setState(StateConnecting)

	conn, _, err := o.dialer.Dial(o.url, nil)
	if err != nil {
		slog.Debug("orders channel dial failed", "url", o.url, "error", err)
		o.scheduleReconnect()
		return
	}

	o.mu.Lock()
	if o.done {
		o.mu.Unlock()
		conn.Close()
		return
	}
	o.conn = conn
	o.mu.Unlock()

	o.timer.Stop()
	o.setState(StateOpen)
	go o.readLoop(conn)
}

// Send pushes a JSON message to the server. Fails when the channel is not
// open.
func (o *OrdersChannel) Send(v any) error {
	o.mu.Lock()
	conn := o.conn
	o.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.WriteJSON(v)
}

// Close tears the channel down: the pending reconnect timer is cancelled,
// the transport is closed, and no further reconnection occurs.
func (o *OrdersChannel) Close() {
	o.mu.Lock()
	o.done = true
	conn := o.conn
	o.conn = nil
	o.mu.Unlock()

	o.timer.Stop()
	if conn != nil {
		conn.Close()
	}
	o.setState(StateClosed)
}

func (o *OrdersChannel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var msg OrdersMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Bad frame: drop it, keep the connection.
			slog.Debug("discarding malformed orders message", "error", err)
			continue
		}
		o.handler(msg)
	}

	o.mu.Lock()
	if o.conn == conn {
		o.conn = nil
	}
	stale := o.conn != nil // a newer connection already took over
	done := o.done
	o.mu.Unlock()

	if done || stale {
		return
	}
	o.scheduleReconnect()
}

func (o *OrdersChannel) scheduleReconnect() {
	o.setState(StateClosed)
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done {
		return
	}
	o.timer.Schedule(o.delay, o.Connect)
}

func (o *OrdersChannel) setState(s State) {
	o.mu.Lock()
	o.state = s
	fn := o.onState
	o.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
