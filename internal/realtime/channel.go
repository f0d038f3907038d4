// ABOUTME: Shared connection state and reconnect timer for live channels
// ABOUTME: At most one reconnect attempt may ever be pending per channel

package realtime

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNotConnected is returned by Send when the channel is not open.
var ErrNotConnected = errors.New("channel is not open")

// State is the lifecycle of a live channel connection.
type State int

const (
	// StateConnecting means a handshake is in progress.
	StateConnecting State = iota
	// StateOpen means messages are flowing.
	StateOpen
	// StateClosed means the transport dropped; a reconnect may be pending.
	StateClosed
	// StateNoToken is terminal: no credential was available at connect
	// time, and no reconnection is attempted.
	StateNoToken
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateNoToken:
		return "no-token"
	default:
		return "unknown"
	}
}

// reconnectTimer schedules reconnect attempts. A close event arriving while
// an attempt is already scheduled must not stack a second timer.
type reconnectTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arms the timer unless one is already pending. Reports whether a
// new attempt was scheduled.
func (t *reconnectTimer) Schedule(d time.Duration, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return false
	}
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
	return true
}

// Stop cancels any pending attempt.
func (t *reconnectTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// wsBaseURL rewrites an http(s) base URL to its ws(s) counterpart.
func wsBaseURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(base, "https://") {
		return "wss://" + strings.TrimPrefix(base, "https://")
	}
	if strings.HasPrefix(base, "http://") {
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
