// ABOUTME: Tests for the orders WebSocket channel
// ABOUTME: Exercises reconnect-on-drop, malformed frame tolerance, and teardown

package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsServer upgrades every request and hands the connection to fn.
// It counts accepted connections.
func wsServer(t *testing.T, fn func(*websocket.Conn)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade: %v", err)
			return
		}
		dials.Add(1)
		fn(conn)
	}))
	t.Cleanup(srv.Close)
	return srv, &dials
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestOrdersChannelDeliversMessages(t *testing.T) {
	srv, _ := wsServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"order_update","invoice_id":"42","status":"ready"}`))
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	var mu sync.Mutex
	var got []OrdersMessage
	ch := NewOrdersChannel(srv.URL, func(m OrdersMessage) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	})
	defer ch.Close()
	ch.Connect()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, "order event never delivered")

	mu.Lock()
	defer mu.Unlock()
	if got[0].Type != "order_update" || got[0].InvoiceID != "42" || got[0].Status != "ready" {
		t.Errorf("got message %+v", got[0])
	}
}

func TestOrdersChannelMalformedFrameKeepsConnection(t *testing.T) {
	srv, _ := wsServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{garbage`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"order_update","invoice_id":"7"}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	var mu sync.Mutex
	var got []OrdersMessage
	ch := NewOrdersChannel(srv.URL, func(m OrdersMessage) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	})
	defer ch.Close()
	ch.Connect()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, "message after malformed frame never delivered")

	if st := ch.State(); st != StateOpen {
		t.Errorf("state after malformed frame = %v, want open", st)
	}
	mu.Lock()
	defer mu.Unlock()
	if got[0].InvoiceID != "7" {
		t.Errorf("got message %+v", got[0])
	}
}

func TestOrdersChannelReconnectsAfterDrop(t *testing.T) {
	srv, dials := wsServer(t, func(conn *websocket.Conn) {
		conn.Close() // server kills every connection immediately
	})

	ch := NewOrdersChannel(srv.URL, func(OrdersMessage) {})
	ch.delay = 10 * time.Millisecond
	defer ch.Close()
	ch.Connect()

	waitFor(t, func() bool { return dials.Load() >= 3 }, "channel did not keep reconnecting")
}

func TestOrdersChannelDialFailureSchedulesRetry(t *testing.T) {
	srv, dials := wsServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	srv.Close() // first dials fail, then nothing listens

	ch := NewOrdersChannel(srv.URL, func(OrdersMessage) {})
	ch.delay = 10 * time.Millisecond
	defer ch.Close()
	ch.Connect()

	if st := ch.State(); st != StateClosed {
		t.Errorf("state after failed dial = %v, want closed", st)
	}
	time.Sleep(50 * time.Millisecond)
	if dials.Load() != 0 {
		t.Errorf("dead server accepted %d connections", dials.Load())
	}
}

func TestOrdersChannelCloseCancelsReconnect(t *testing.T) {
	srv, dials := wsServer(t, func(conn *websocket.Conn) {
		conn.Close()
	})

	ch := NewOrdersChannel(srv.URL, func(OrdersMessage) {})
	ch.delay = 30 * time.Millisecond
	ch.Connect()

	waitFor(t, func() bool { return dials.Load() >= 1 }, "never connected")
	ch.Close()
	seen := dials.Load()

	time.Sleep(100 * time.Millisecond)
	if dials.Load() != seen {
		t.Errorf("channel reconnected after Close: %d -> %d dials", seen, dials.Load())
	}
	if st := ch.State(); st != StateClosed {
		t.Errorf("state after Close = %v, want closed", st)
	}
}

func TestOrdersChannelSend(t *testing.T) {
	received := make(chan string, 1)
	srv, _ := wsServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- string(data)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ch := NewOrdersChannel(srv.URL, func(OrdersMessage) {})
	defer ch.Close()

	if err := ch.Send(map[string]string{"type": "ping"}); err != ErrNotConnected {
		t.Errorf("Send before Connect = %v, want ErrNotConnected", err)
	}

	ch.Connect()
	waitFor(t, func() bool { return ch.State() == StateOpen }, "never opened")

	if err := ch.Send(OrdersMessage{Type: "status_change", InvoiceID: "9", Status: "preparing"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	select {
	case data := <-received:
		if !strings.Contains(data, "status_change") {
			t.Errorf("server received %q", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the message")
	}
}

func TestOrdersChannelStateTransitions(t *testing.T) {
	srv, _ := wsServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	var mu sync.Mutex
	var states []State
	ch := NewOrdersChannel(srv.URL, func(OrdersMessage) {})
	ch.OnStateChange(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})
	ch.Connect()
	waitFor(t, func() bool { return ch.State() == StateOpen }, "never opened")
	ch.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(states) < 3 || states[0] != StateConnecting || states[1] != StateOpen || states[len(states)-1] != StateClosed {
		t.Errorf("state sequence = %v", states)
	}
}
