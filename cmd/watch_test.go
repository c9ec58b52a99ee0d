package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emprendelab/vitrina/internal/clock"
	"github.com/emprendelab/vitrina/internal/config"
)

// syncBuffer is a bytes.Buffer safe for the painter's goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// lastFrame returns what the most recent paint drew.
func lastFrame(out string) string {
	frames := strings.Split(out, "\033[H\033[2J")
	return frames[len(frames)-1]
}

func TestWatchStatsPaintsPolledCounters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) >= 3 {
			cancel()
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total": 15, "total_categorias": 4, "total_emprendedores": 11}`)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.SiteName = "Vitrina de prueba"
	cfg.Poll.Endpoint = srv.URL

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.Stepping(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	if err := watchStats(ctx, &out, cfg, clk, logger); err != nil {
		t.Fatalf("watchStats: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got < 3 {
		t.Errorf("polled %d times, want at least 3", got)
	}

	// The trailing repaint runs on its own goroutine.
	deadline := time.Now().Add(5 * time.Second)
	for {
		frame := lastFrame(out.String())
		if strings.Contains(frame, "15") && strings.Contains(frame, "11") {
			if !strings.Contains(frame, "Vitrina de prueba") || !strings.Contains(frame, "emprendimientos") {
				t.Errorf("final frame missing title or labels:\n%s", frame)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("settled counters never painted; last frame:\n%s", frame)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchStatsSurvivesFailingEndpoint(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) >= 2 {
			cancel()
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Poll.Endpoint = srv.URL

	var out syncBuffer
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	clk := clock.Stepping(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	if err := watchStats(ctx, &out, cfg, clk, logger); err != nil {
		t.Fatalf("watchStats: %v", err)
	}
	if !strings.Contains(logs.String(), "stats poll failed") {
		t.Errorf("expected a poll failure warning, got %q", logs.String())
	}
	if frame := lastFrame(out.String()); !strings.Contains(frame, "0") {
		t.Errorf("board should still show the initial counters:\n%s", frame)
	}
}
