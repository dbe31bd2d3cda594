// Package store persists conversion history for server mode.
//
// Each pipeline run handled by the HTTP API can be saved as a [Record]
// and listed back newest first. Two backends implement [Store]:
//
//   - [MemoryStore]: in-process storage for development and tests
//   - [MongoStore]: MongoDB-backed storage for deployments
//
// When no store is configured the server simply skips persistence.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record kinds.
const (
	KindConvert   = "convert"
	KindVisualize = "visualize"
)

// Stats summarizes one run for the history listing.
type Stats struct {
	Elements   int   `json:"elements,omitempty" bson:"elements,omitempty"`
	Relations  int   `json:"relations,omitempty" bson:"relations,omitempty"`
	Bundles    int   `json:"bundles,omitempty" bson:"bundles,omitempty"`
	Nodes      int   `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges      int   `json:"edges,omitempty" bson:"edges,omitempty"`
	Skipped    int   `json:"skipped,omitempty" bson:"skipped,omitempty"`
	DurationMS int64 `json:"duration_ms,omitempty" bson:"duration_ms,omitempty"`
}

// Record is one persisted pipeline run.
type Record struct {
	ID        string    `json:"id" bson:"id"`
	Kind      string    `json:"kind" bson:"kind"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Input     []byte    `json:"input,omitempty" bson:"input,omitempty"`
	Output    []byte    `json:"output,omitempty" bson:"output,omitempty"`
	Formats   []string  `json:"formats,omitempty" bson:"formats,omitempty"`
	Stats     Stats     `json:"stats" bson:"stats"`
}

// NewRecord creates a record of the given kind with a fresh id and
// timestamp.
func NewRecord(kind string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the persistence interface for conversion history.
type Store interface {
	// Save persists a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by id. An absent id yields an error with
	// code RECORD_NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records newest first. A non-positive limit returns
	// everything.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
