package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/emprendelab/vitrina/internal/audit"
	"github.com/emprendelab/vitrina/internal/progress"
)

// ImportSummary reports the outcome of an import run.
type ImportSummary struct {
	Files    int
	Imported int
	Skipped  int
	Failed   []string
}

// Importer loads listings from JSON data files: each file holds a JSON
// array of listings in the published format.
type Importer struct {
	Store    *Store
	Logger   *slog.Logger
	Progress progress.Reporter
}

// ImportGlob imports every file matching pattern, which may use **.
// Unreadable or malformed files are logged and recorded in
// ImportSummary.Failed; listings whose ID is already stored are skipped.
func (im *Importer) ImportGlob(ctx context.Context, pattern string) (*ImportSummary, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}

	logger := im.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := im.Progress
	if reporter == nil {
		reporter = progress.Discard
	}

	summary := &ImportSummary{Files: len(paths)}
	reporter.Start(len(paths), "Importing listings")
	defer reporter.Finish()

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		imported, skipped, err := im.importFile(ctx, path)
		summary.Imported += imported
		summary.Skipped += skipped
		if err != nil {
			logger.Warn("skipping data file", "path", path, "error", err)
			summary.Failed = append(summary.Failed, path)
		}
		reporter.Update(i+1, filepath.Base(path))
	}
	return summary, nil
}

func (im *Importer) importFile(ctx context.Context, path string) (imported, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("reading: %w", err)
	}
	var listings []Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return 0, 0, fmt.Errorf("decoding: %w", err)
	}

	ctx = audit.WithActor(ctx, audit.Actor{Type: audit.ActorImport, ID: path})

	for _, l := range listings {
		if l.ID != "" {
			exists, err := im.Store.Exists(ctx, l.ID)
			if err != nil {
				return imported, skipped, err
			}
			if exists {
				skipped++
				continue
			}
		}
		if _, err := im.Store.Create(ctx, l); err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}

// Export writes every listing to w as an indented JSON array, keeping
// non-ASCII text unescaped.
func Export(ctx context.Context, store *Store, w io.Writer) (int, error) {
	listings, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return 0, fmt.Errorf("encoding listings: %w", err)
	}
	return len(listings), nil
}
