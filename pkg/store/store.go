// Package store persists layout snapshots so the HTTP service can hand out
// stable snapshot IDs.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per snapshot, for single-host use
//   - [MongoStore]: a MongoDB collection, for multi-instance deployments
//
// Snapshots without an ID receive a random UUID on Save.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// Store persists snapshots by ID.
type Store interface {
	// Save stores s, assigning s.ID when empty, and returns the ID.
	Save(ctx context.Context, s *masonry.Snapshot) (string, error)

	// Load returns the snapshot with the given ID or an ErrCodeNotFound error.
	Load(ctx context.Context, id string) (*masonry.Snapshot, error)

	// Delete removes the snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored IDs in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// assignID gives s a fresh ID when it has none and validates it.
func assignID(s *masonry.Snapshot) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot is nil")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return errors.ValidateSnapshotID(s.ID)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "snapshot %s not found", id)
}
