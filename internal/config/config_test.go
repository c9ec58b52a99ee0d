package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.FeaturedCount != 6 {
		t.Errorf("expected default featured_count 6, got %d", cfg.FeaturedCount)
	}
	if cfg.Poll.Interval != 10*time.Second {
		t.Errorf("expected default poll interval 10s, got %v", cfg.Poll.Interval)
	}
	if cfg.Poll.TweenDuration != time.Second {
		t.Errorf("expected default tween duration 1s, got %v", cfg.Poll.TweenDuration)
	}
	if cfg.DatabasePath() != filepath.Join("data", "vitrina.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.vitrina.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.SiteName = "Vitrina UNAL"
	original.LogFormat = LogFormatJSON
	original.Poll.Interval = 30 * time.Second
	original.Feed.Quiet = 500 * time.Millisecond

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.SiteName != original.SiteName {
		t.Errorf("site_name: got %q, want %q", loaded.SiteName, original.SiteName)
	}
	if loaded.LogFormat != original.LogFormat {
		t.Errorf("log_format: got %q, want %q", loaded.LogFormat, original.LogFormat)
	}
	if loaded.Poll.Interval != original.Poll.Interval {
		t.Errorf("poll.interval: got %v, want %v", loaded.Poll.Interval, original.Poll.Interval)
	}
	if loaded.Feed.Quiet != original.Feed.Quiet {
		t.Errorf("feed.quiet: got %v, want %v", loaded.Feed.Quiet, original.Feed.Quiet)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("VITRINA_PORT", "9191")
	t.Setenv("VITRINA_POLL__INTERVAL", "3s")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9191 {
		t.Errorf("env override failed: got port %d, want 9191", loaded.Port)
	}
	if loaded.Poll.Interval != 3*time.Second {
		t.Errorf("nested env override failed: got %v, want 3s", loaded.Poll.Interval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"negative featured count", func(c *Config) { c.FeaturedCount = -2 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"zero poll interval", func(c *Config) { c.Poll.Interval = 0 }},
		{"negative tween", func(c *Config) { c.Poll.TweenDuration = -time.Second }},
		{"negative quiet", func(c *Config) { c.Feed.Quiet = -time.Second }},
		{"negative retention", func(c *Config) { c.ActivityRetention = -time.Hour }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "DEBUG"
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"abc", "0", "70000"} {
		if validatePort(s) == nil {
			t.Errorf("validatePort(%q) should fail", s)
		}
	}
	if err := validatePort("8080"); err != nil {
		t.Errorf("validatePort(8080): %v", err)
	}
}
