package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emprendelab/vitrina/internal/audit"
	"github.com/emprendelab/vitrina/internal/db"
)

// ErrNotFound is returned when no listing has the requested ID.
var ErrNotFound = errors.New("listing not found")

// Store manages persistence of listings.
type Store struct {
	db *db.DB

	mu        sync.Mutex
	listeners []func()
}

// NewStore creates a new listing store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const listingColumns = `id, name, description, category, owner_name, email, university, career, semester,
	instagram, facebook, tiktok, website, initial_investment, time_running, employees, stage, registered_at`

// Create stores a listing, assigning an ID and registration time when
// missing, and journals it under the actor carried by ctx.
func (s *Store) Create(ctx context.Context, l Listing) (*Listing, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.RegisteredAt.IsZero() {
		l.RegisteredAt = Timestamp{time.Now().UTC()}
	}
	if l.Category == "" {
		l.Category = DefaultCategory
	}
	if l.Stage == "" {
		l.Stage = DefaultStage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Description, l.Category, l.OwnerName, l.Email, l.University, l.Career, l.Semester,
		l.Instagram, l.Facebook, l.TikTok, l.Website, l.InitialInvestment, l.TimeRunning, l.Employees, l.Stage,
		l.RegisteredAt.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting listing: %w", err)
	}

	actor := audit.ActorFrom(ctx)
	if err := audit.Log(ctx, tx, audit.Entry{
		ActorType: actor.Type,
		ActorID:   actor.ID,
		Action:    actor.CreateAction(),
		ListingID: l.ID,
		Summary:   l.Name,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing listing: %w", err)
	}

	s.notify()
	return &l, nil
}

// GetByID retrieves a listing by its ID.
func (s *Store) GetByID(ctx context.Context, id string) (*Listing, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	return &l, nil
}

// Exists reports whether a listing with id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking listing: %w", err)
	}
	return n > 0, nil
}

// List returns every listing in registration order.
func (s *Store) List(ctx context.Context) ([]Listing, error) {
	return s.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY seq ASC`)
}

// Recent returns the n most recently registered listings, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Listing, error) {
	if n <= 0 {
		return []Listing{}, nil
	}
	listings, err := s.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(listings)-1; i < j; i, j = i+1, j-1 {
		listings[i], listings[j] = listings[j], listings[i]
	}
	return listings, nil
}

// Count returns the number of stored listings.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return n, nil
}

// CountByCategory returns the number of listings per category.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM listings GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// OnChange registers fn to be called after every successful write.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]Listing, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row scanner) (Listing, error) {
	var l Listing
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Category, &l.OwnerName, &l.Email, &l.University, &l.Career, &l.Semester,
		&l.Instagram, &l.Facebook, &l.TikTok, &l.Website, &l.InitialInvestment, &l.TimeRunning, &l.Employees, &l.Stage,
		&l.RegisteredAt.Time)
	return l, err
}
