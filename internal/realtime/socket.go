// ABOUTME: Generic duplex WebSocket channel authenticated via token query param
// ABOUTME: No token at connect time is a terminal state, not a transient failure

package realtime

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const socketReconnectDelay = 5 * time.Second

// SocketChannel is a persistent duplex connection to an arbitrary ws path,
// with the access token embedded as a query parameter at connect time (the
// transport cannot carry custom headers after the handshake). The token
// source is read fresh on every connect so reconnections after a refresh
// carry the current credential.
type SocketChannel struct {
	url     string
	token   func() string
	handler func(json.RawMessage)
	dialer  *websocket.Dialer
	delay   time.Duration
	timer   reconnectTimer

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	onState func(State)
	done    bool
}

// NewSocketChannel builds a channel for baseURL+path. token supplies the
// current access token; handler receives each raw JSON payload.
func NewSocketChannel(baseURL, path string, token func() string, handler func(json.RawMessage)) *SocketChannel {
	return &SocketChannel{
		url:     wsBaseURL(baseURL) + path,
		token:   token,
		handler: handler,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		delay:   socketReconnectDelay,
		state:   StateClosed,
	}
}

// OnStateChange registers a state observer. Must be called before Connect.
func (s *SocketChannel) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// State returns the current connection state.
func (s *SocketChannel) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect dials the channel. With no token available the channel settles in
// the terminal no-token state and never retries; everything else behaves
// like OrdersChannel.
func (s *SocketChannel) Connect() {
	s.mu.Lock()
	if s.done || s.conn != nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	tok := s.token()
	if tok == "" {
		s.setState(StateNoToken)
		return
	}

	s.setState(StateConnecting)

	sep := "?"
	if strings.Contains(s.url, "?") {
		sep = "&"
	}
	target := s.url + sep + "token=" + url.QueryEscape(tok)

	conn, _, err := s.dialer.Dial(target, nil)
	if err != nil {
		slog.Debug("socket channel dial failed", "url", s.url, "error", err)
		s.scheduleReconnect()
		return
	}

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()

	s.timer.Stop()
	s.setState(StateOpen)
	go s.readLoop(conn)
}

// Send pushes a JSON message to the server.
func (s *SocketChannel) Send(v any) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.WriteJSON(v)
}

// Close tears the channel down and cancels any pending reconnect.
func (s *SocketChannel) Close() {
	s.mu.Lock()
	s.done = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	s.timer.Stop()
	if conn != nil {
		conn.Close()
	}
	s.setState(StateClosed)
}

func (s *SocketChannel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if !json.Valid(data) {
			slog.Debug("discarding malformed socket message")
			continue
		}
		s.handler(json.RawMessage(data))
	}

	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	stale := s.conn != nil
	done := s.done
	s.mu.Unlock()

	if done || stale {
		return
	}
	s.scheduleReconnect()
}

func (s *SocketChannel) scheduleReconnect() {
	s.setState(StateClosed)
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done {
		return
	}
	s.timer.Schedule(s.delay, s.Connect)
}

func (s *SocketChannel) setState(st State) {
	s.mu.Lock()
	s.state = st
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
