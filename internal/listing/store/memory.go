package store

import (
	"context"
	"sync"

	"provision/internal/listing/models"
	"provision/pkg/platform/sentinel"
	"provision/pkg/requestcontext"
)

// Memory is an in-memory Store for tests and for running the service without
// PostgreSQL configured.
type Memory struct {
	mu       sync.RWMutex
	listings map[int64]models.Listing
	nextID   int64
}

func NewMemory() *Memory {
	return &Memory{listings: make(map[int64]models.Listing)}
}

func (m *Memory) Insert(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := *l
	stored.ID = m.nextID
	stored.CreatedAt = requestcontext.Now(ctx).UTC()
	m.listings[stored.ID] = stored

	out := stored
	return &out, nil
}

func (m *Memory) Get(ctx context.Context, id int64) (*models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.listings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (m *Memory) Update(ctx context.Context, id int64, patch models.ListingPatch) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.listings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	patch.Apply(&stored)
	m.listings[id] = stored

	out := stored
	return &out, nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listings[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(m.listings, id)
	return nil
}

func (m *Memory) List(ctx context.Context, f models.Filter) ([]models.Listing, error) {
	m.mu.RLock()
	matched := make([]models.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		if f.Matches(&l) {
			matched = append(matched, l)
		}
	}
	m.mu.RUnlock()

	return f.SortAndWindow(matched), nil
}
