package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emprendelab/vitrina/internal/audit"
	"github.com/emprendelab/vitrina/internal/clock"
	"github.com/emprendelab/vitrina/internal/listing"
	"github.com/emprendelab/vitrina/internal/server"
	"github.com/emprendelab/vitrina/internal/site"
	"github.com/emprendelab/vitrina/internal/stats"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web server",
	Long:  `Starts the vitrina web server with the HTML pages, the listing JSON API, /api/stats and the /ws/stats push feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		logger := newLogger(cfg)

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		feed := stats.NewFeed(store, cfg.Feed.Quiet, clock.Real(), logger)
		defer feed.Close()
		store.OnChange(feed.Notify)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, logger)

		journal := audit.NewStore(database)
		if cfg.ActivityRetention > 0 {
			n, err := journal.DeleteBefore(context.Background(), time.Now().Add(-cfg.ActivityRetention))
			if err != nil {
				return err
			}
			logger.Debug("pruned activity journal", "deleted", n, "retention", cfg.ActivityRetention)
		}

		// Register all feature routes.
		r := srv.Router()
		listing.RegisterRoutes(r, store)
		audit.RegisterRoutes(r, journal)
		stats.RegisterRoutes(r, store, feed)
		pages, err := site.New(store, site.Options{
			SiteName: cfg.SiteName,
			Featured: cfg.FeaturedCount,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("building pages: %w", err)
		}
		pages.RegisterRoutes(r)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		count, err := store.Count(ctx)
		if err != nil {
			return err
		}
		logger.Info("vitrina starting", "version", Version, "database", database.Path(), "listings", count)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
