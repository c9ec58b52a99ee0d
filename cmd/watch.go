package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emprendelab/vitrina/internal/board"
	"github.com/emprendelab/vitrina/internal/clock"
	"github.com/emprendelab/vitrina/internal/config"
	"github.com/emprendelab/vitrina/internal/ratelimit"
	"github.com/emprendelab/vitrina/internal/stats"
	"github.com/emprendelab/vitrina/internal/tween"
)

const (
	redrawLimit  = 50 * time.Millisecond
	redrawSettle = 100 * time.Millisecond
)

var (
	watchEndpoint string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live summary counters in the terminal",
	Long: `Polls a vitrina stats endpoint and animates the venture, category and
student counters toward each new value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("endpoint") {
			cfg.Poll.Endpoint = watchEndpoint
		}
		if cmd.Flags().Changed("interval") {
			cfg.Poll.Interval = watchInterval
		}
		logger := newLogger(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchStats(ctx, cmd.OutOrStdout(), cfg, clock.Real(), logger)
	},
}

// watchStats paints the board to w and polls the configured endpoint
// until ctx ends. Cancellation is a normal exit.
func watchStats(ctx context.Context, w io.Writer, cfg *config.Config, clk clock.Clock, logger *slog.Logger) error {
	b := board.New(cfg.SiteName)
	draw := boardPainter(w, b)

	// Leading-edge redraws while a tween runs, plus one trailing
	// redraw so the settled value is always painted.
	throttled := ratelimit.Throttle(clk, redrawLimit, draw)
	defer throttled.Stop()
	settled := ratelimit.Debounce(clk, redrawSettle, draw)
	defer settled.Stop()
	b.OnChange(func() {
		throttled.Call()
		settled.Call()
	})
	draw()

	poller := &stats.Poller{
		Endpoint: cfg.Poll.Endpoint,
		Counters: b.Counters(),
		Tweener: &tween.Stepper{
			Clock: clk,
			Frame: cfg.Poll.FrameInterval,
			Ease:  tween.EaseOutCubic,
		},
		Interval:       cfg.Poll.Interval,
		TweenDuration:  cfg.Poll.TweenDuration,
		RequestTimeout: cfg.Poll.RequestTimeout,
		Clock:          clk,
		Logger:         logger,
	}

	logger.Debug("watching stats", "endpoint", poller.Endpoint, "interval", poller.Interval)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watching %s: %w", poller.Endpoint, err)
	}
	return nil
}

// boardPainter returns a function that clears the terminal and paints
// the board. Paints are serialized.
func boardPainter(w io.Writer, b *board.Board) func() {
	var mu sync.Mutex
	return func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "\033[H\033[2J%s\n", b.Render())
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchEndpoint, "endpoint", "", "stats endpoint URL (overrides config)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", stats.DefaultInterval, "poll interval (overrides config)")
	rootCmd.AddCommand(watchCmd)
}
