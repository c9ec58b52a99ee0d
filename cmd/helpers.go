package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emprendelab/vitrina/internal/config"
	"github.com/emprendelab/vitrina/internal/db"
	"github.com/emprendelab/vitrina/internal/listing"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `vitrina init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config. --verbose forces
// debug level. Logs always go to stderr so stdout stays clean for
// command output and the MCP protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	return buildLogger(os.Stderr, cfg, verbose)
}

func buildLogger(w io.Writer, cfg *config.Config, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens the configured database and returns a listing store
// over it. The caller closes the database.
func openStore(cfg *config.Config) (*db.DB, *listing.Store, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, listing.NewStore(database), nil
}
