package store

import (
	"context"

	"equipment-tracker-backend/internal/model"
)

// Store persists the whole equipment collection as a single document.
// Every call re-reads or rewrites the full collection; there is no caching.
type Store interface {
	// Load returns the stored records in order. A store that holds no
	// document yet is initialized to an empty collection.
	Load(ctx context.Context) ([]model.Equipment, error)
	// Save atomically replaces the stored collection with records.
	Save(ctx context.Context, records []model.Equipment) error
	Close() error
}
