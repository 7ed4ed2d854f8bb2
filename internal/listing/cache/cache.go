// Package cache provides a read-through cache for single-listing lookups.
// The cache is strictly an accelerator: misses and backend failures fall back
// to the store, and every mutation invalidates the affected key.
package cache

import (
	"context"

	"provision/internal/listing/models"
)

// Cache holds recently fetched listings keyed by id.
type Cache interface {
	// Get returns the cached listing, or (nil, nil) on a miss.
	Get(ctx context.Context, id int64) (*models.Listing, error)
	// Set stores l under its id.
	Set(ctx context.Context, l *models.Listing) error
	// Invalidate drops the key for id. Absent keys are not an error.
	Invalidate(ctx context.Context, id int64) error
}
