// Package service orchestrates listing operations: validation first, then the
// store, then the side channels (cache, metrics, audit). Validation failures
// never reach the store; store facts (sentinel errors) are translated into
// domain errors here so handlers only ever see coded errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	"provision/internal/audit"
	"provision/internal/listing/cache"
	listingmetrics "provision/internal/listing/metrics"
	"provision/internal/listing/models"
	"provision/internal/listing/store"
	dErrors "provision/pkg/domain-errors"
	"provision/pkg/platform/sentinel"
	"provision/pkg/requestcontext"
)

// Service implements the listing operations over a Store.
type Service struct {
	store   store.Store
	cache   cache.Cache
	auditor audit.Publisher
	metrics *listingmetrics.Metrics
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the read-through cache for single-listing lookups.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithAudit sets the mutation audit sink.
func WithAudit(p audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithMetrics sets the domain counters.
func WithMetrics(m *listingmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: st, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and normalizes the request, then inserts the record.
// The store assigns id and created_at.
func (s *Service) Create(ctx context.Context, req models.CreateListingRequest) (*models.Listing, error) {
	l, err := req.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, l)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create listing")
	}

	if s.metrics != nil {
		s.metrics.ListingsCreated.Inc()
	}
	s.emit(ctx, audit.ActionCreated, created.ID)
	return created, nil
}

// Get returns one listing, consulting the cache first when configured.
func (s *Service) Get(ctx context.Context, id int64) (*models.Listing, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.WarnContext(ctx, "listing cache read failed", "listing_id", id, "error", err.Error())
		}
	}

	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "failed to get listing")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, l); err != nil {
			s.logger.WarnContext(ctx, "listing cache write failed", "listing_id", id, "error", err.Error())
		}
	}
	return l, nil
}

// List returns the filtered, ordered, windowed listings. No match is an
// empty slice, not an error.
func (s *Service) List(ctx context.Context, f models.Filter) ([]models.Listing, error) {
	listings, err := s.store.List(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list listings")
	}
	return listings, nil
}

// Update validates the supplied fields and applies them; omitted fields keep
// their prior value. An empty patch returns the record unchanged.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateListingRequest) (*models.Listing, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if patch.IsZero() {
		return s.Get(ctx, id)
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, translateStoreErr(err, "failed to update listing")
	}

	s.invalidate(ctx, id)
	if s.metrics != nil {
		s.metrics.ListingsUpdated.Inc()
	}
	s.emit(ctx, audit.ActionUpdated, id)
	return updated, nil
}

// Delete removes the record. Deleting an absent id reports not-found, which
// keeps the operation an idempotent failure rather than a crash.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreErr(err, "failed to delete listing")
	}

	s.invalidate(ctx, id)
	if s.metrics != nil {
		s.metrics.ListingsDeleted.Inc()
	}
	s.emit(ctx, audit.ActionDeleted, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "listing cache invalidation failed", "listing_id", id, "error", err.Error())
	}
}

// emit records the mutation. Audit failures are logged, not propagated: the
// mutation already committed and must not be reported as failed.
func (s *Service) emit(ctx context.Context, action audit.Action, id int64) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Action:    action,
		ListingID: id,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	}
	if err := s.auditor.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit publish failed",
			"action", string(action),
			"listing_id", id,
			"error", err.Error(),
		)
	}
}

func translateStoreErr(err error, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "listing not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
