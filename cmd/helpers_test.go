package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/emprendelab/vitrina/internal/config"
)

func TestBuildLoggerText(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()

	logger := buildLogger(&buf, cfg, false)
	logger.Debug("hidden")
	logger.Info("listing created", "id", "cafesol")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "msg=\"listing created\"") || !strings.Contains(out, "id=cafesol") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestBuildLoggerJSONVerbose(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.LogFormat = config.LogFormatJSON

	logger := buildLogger(&buf, cfg, true)
	logger.Debug("poll", "total", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["level"] != "DEBUG" || rec["msg"] != "poll" {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["total"] != float64(3) {
		t.Errorf("total = %v, want 3", rec["total"])
	}
}

func TestOpenStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	database, store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer database.Close()

	n, err := store.Count(t.Context())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}
