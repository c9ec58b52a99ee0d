package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/emprendelab/vitrina/internal/clock"
	"github.com/emprendelab/vitrina/internal/tween"
)

const (
	DefaultInterval       = 10 * time.Second
	DefaultTweenDuration  = time.Second
	DefaultRequestTimeout = 5 * time.Second
)

// Counter is one on-screen number.
type Counter interface {
	Value() int
	Set(v int)
}

// Counters are the three displays a poll updates. A nil counter is not
// on screen and is skipped.
type Counters struct {
	Total      Counter
	Categories Counter
	Students   Counter
}

// Poller periodically fetches a Snapshot from Endpoint and animates the
// counters toward it.
type Poller struct {
	Endpoint       string
	Client         *http.Client
	Counters       Counters
	Tweener        tween.Tweener
	Interval       time.Duration
	TweenDuration  time.Duration
	RequestTimeout time.Duration
	Clock          clock.Clock
	Logger         *slog.Logger
}

// Fetch performs one GET against the endpoint and decodes the snapshot.
func (p *Poller) Fetch(ctx context.Context) (Snapshot, error) {
	timeout := p.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetching stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Snapshot{}, fmt.Errorf("fetching stats: unexpected status %s", resp.Status)
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding stats: %w", err)
	}
	return snap, nil
}

// Poll fetches once and animates every counter whose displayed value
// differs from the fetched one. Counters already showing the fetched
// value are not touched. The three animations run together; Poll
// returns when all have settled.
func (p *Poller) Poll(ctx context.Context) (Snapshot, error) {
	snap, err := p.Fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	tw := p.Tweener
	if tw == nil {
		tw = tween.NewStepper()
	}
	d := p.TweenDuration
	if d <= 0 {
		d = DefaultTweenDuration
	}

	targets := []struct {
		counter Counter
		value   int
	}{
		{p.Counters.Total, snap.Total},
		{p.Counters.Categories, snap.TotalCategories},
		{p.Counters.Students, snap.TotalStudents},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(targets))
	for _, target := range targets {
		if target.counter == nil {
			continue
		}
		current := target.counter.Value()
		if current == target.value {
			continue
		}
		wg.Add(1)
		go func(c Counter, from, to int) {
			defer wg.Done()
			if err := tw.Tween(ctx, from, to, d, c.Set); err != nil {
				errs <- err
			}
		}(target.counter, current, target.value)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return snap, err
	}
	return snap, nil
}

// Run polls immediately and then Interval after each poll finishes,
// until ctx is done. Polls never overlap. Failures are logged and the
// counters keep their previous values until a later poll succeeds.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap, err := p.Poll(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn("stats poll failed", "endpoint", p.Endpoint, "error", err)
		case err == nil:
			logger.Debug("stats polled", "total", snap.Total,
				"categories", snap.TotalCategories, "students", snap.TotalStudents)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.After(interval):
		}
	}
}
