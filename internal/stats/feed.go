package stats

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emprendelab/vitrina/internal/clock"
	"github.com/emprendelab/vitrina/internal/ratelimit"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed pushes the current Snapshot to websocket subscribers on connect
// and whenever the counters change.
type Feed struct {
	src     Lister
	logger  *slog.Logger
	refresh *ratelimit.Debounced

	mu      sync.Mutex
	last    Snapshot
	primed  bool
	clients map[*feedClient]struct{}
}

type feedClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *feedClient) send(snap Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(snap)
}

// NewFeed creates a Feed over src. Change notifications are collapsed
// so a burst of writes triggers a single recomputation once quiet for
// the given interval.
func NewFeed(src Lister, quiet time.Duration, clk clock.Clock, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Feed{
		src:     src,
		logger:  logger,
		clients: make(map[*feedClient]struct{}),
	}
	f.refresh = ratelimit.Debounce(clk, quiet, func() {
		f.Refresh(context.Background())
	})
	return f
}

// Notify schedules a refresh. Wire it to the store's change hook.
func (f *Feed) Notify() { f.refresh.Call() }

// Close stops pending refreshes and disconnects every subscriber.
func (f *Feed) Close() {
	f.refresh.Stop()
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		c.conn.Close()
		delete(f.clients, c)
	}
}

// Refresh recomputes the snapshot and broadcasts it if any counter
// changed. It reports whether a broadcast happened.
func (f *Feed) Refresh(ctx context.Context) bool {
	snap, err := Current(ctx, f.src)
	if err != nil {
		f.logger.Warn("stats feed: computing snapshot", "error", err)
		return false
	}

	f.mu.Lock()
	if f.primed && f.last.SameCounters(snap) {
		f.mu.Unlock()
		return false
	}
	f.last = snap
	f.primed = true
	clients := make([]*feedClient, 0, len(f.clients))
	for c := range f.clients {
		clients = append(clients, c)
	}
	f.mu.Unlock()

	for _, c := range clients {
		if err := c.send(snap); err != nil {
			f.logger.Warn("stats feed: dropping subscriber", "error", err)
			f.remove(c)
		}
	}
	return true
}

// Subscribers returns the number of connected websocket clients.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) remove(c *feedClient) {
	f.mu.Lock()
	_, ok := f.clients[c]
	delete(f.clients, c)
	f.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots
// until the client goes away.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("stats feed: websocket upgrade", "error", err)
		return
	}
	c := &feedClient{conn: conn}

	snap, err := Current(r.Context(), f.src)
	if err != nil {
		f.logger.Warn("stats feed: computing snapshot", "error", err)
		conn.Close()
		return
	}
	if err := c.send(snap); err != nil {
		conn.Close()
		return
	}

	f.mu.Lock()
	f.clients[c] = struct{}{}
	if !f.primed {
		f.last = snap
		f.primed = true
	}
	f.mu.Unlock()
	defer f.remove(c)

	// Subscribers only listen; reading detects the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.logger.Debug("stats feed: websocket read", "error", err)
			}
			return
		}
	}
}
