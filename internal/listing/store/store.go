// Package store persists service listings. Implementations return
// sentinel.ErrNotFound for absent records; the service layer translates that
// into domain errors.
package store

import (
	"context"

	"provision/internal/listing/models"
)

// Store is the persistence contract for listings. Each operation is atomic
// with respect to a single record; there are no partial writes of one
// record's fields.
type Store interface {
	// Insert persists l, assigning ID and CreatedAt, and returns the stored
	// record.
	Insert(ctx context.Context, l *models.Listing) (*models.Listing, error)
	// Get returns the record with the given id, or sentinel.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Listing, error)
	// Update applies the supplied patch fields to the record and returns the
	// updated record, or sentinel.ErrNotFound.
	Update(ctx context.Context, id int64, patch models.ListingPatch) (*models.Listing, error)
	// Delete removes the record, or returns sentinel.ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// List returns the filtered, ordered, windowed records. An empty result
	// is not an error.
	List(ctx context.Context, f models.Filter) ([]models.Listing, error)
}
