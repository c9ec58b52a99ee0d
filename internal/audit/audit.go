// Package audit keeps the activity journal: one entry for every listing
// that enters the directory, with who or what put it there.
package audit

import (
	"context"
	"time"
)

// ActorType identifies the channel an action came through.
type ActorType string

const (
	ActorWeb    ActorType = "web"
	ActorAPI    ActorType = "api"
	ActorImport ActorType = "import"
	ActorSystem ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionListingRegistered Action = "listing_registered"
	ActionListingImported   Action = "listing_imported"
)

// Actor is who performed an action. ID is channel-specific: the client
// address for web and API requests, the source file for imports.
type Actor struct {
	Type ActorType
	ID   string
}

// CreateAction returns the action recorded when a listing is created on
// behalf of a.
func (a Actor) CreateAction() Action {
	if a.Type == ActorImport {
		return ActionListingImported
	}
	return ActionListingRegistered
}

// Entry is a single journal record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorType ActorType `json:"actor_type"`
	ActorID   string    `json:"actor_id"`
	Action    Action    `json:"action"`
	ListingID string    `json:"listing_id"`
	Summary   string    `json:"summary"`
}

type actorKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx, or the system actor.
func ActorFrom(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return Actor{Type: ActorSystem}
}
