// Package stats computes the site summary counters, serves them over
// HTTP and websocket, and polls them back into animated displays.
package stats

import (
	"context"
	"sort"

	"github.com/emprendelab/vitrina/internal/listing"
)

// Snapshot is the summary served at /api/stats.
type Snapshot struct {
	Total           int      `json:"total"`
	Categories      []string `json:"categorias"`
	TotalCategories int      `json:"total_categorias"`
	TotalStudents   int      `json:"total_emprendedores"`
}

// SameCounters reports whether a and b show the same three counters.
func (s Snapshot) SameCounters(o Snapshot) bool {
	return s.Total == o.Total && s.TotalCategories == o.TotalCategories && s.TotalStudents == o.TotalStudents
}

// Compute summarizes listings: how many there are, which categories are
// in use, and how many distinct owner names they carry. A blank owner
// name is one more distinct name, as the stored data counts it.
func Compute(listings []listing.Listing) Snapshot {
	categories := make(map[string]bool)
	students := make(map[string]bool)
	for _, l := range listings {
		categories[l.Category] = true
		students[l.OwnerName] = true
	}

	snap := Snapshot{
		Total:           len(listings),
		Categories:      make([]string, 0, len(categories)),
		TotalCategories: len(categories),
		TotalStudents:   len(students),
	}
	for c := range categories {
		snap.Categories = append(snap.Categories, c)
	}
	sort.Strings(snap.Categories)
	return snap
}

// Lister is the listing source the counters are computed from.
type Lister interface {
	List(ctx context.Context) ([]listing.Listing, error)
}

// Current computes the snapshot for everything src holds.
func Current(ctx context.Context, src Lister) (Snapshot, error) {
	listings, err := src.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Compute(listings), nil
}
