package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provision/internal/audit"
	listingmetrics "provision/internal/listing/metrics"
	"provision/internal/listing/models"
	"provision/internal/listing/store"
	dErrors "provision/pkg/domain-errors"
)

type fakeCache struct {
	entries     map[int64]*models.Listing
	invalidated []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]*models.Listing)}
}

func (c *fakeCache) Get(ctx context.Context, id int64) (*models.Listing, error) {
	return c.entries[id], nil
}

func (c *fakeCache) Set(ctx context.Context, l *models.Listing) error {
	copied := *l
	c.entries[l.ID] = &copied
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, id int64) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Publish(ctx context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func validCreate() models.CreateListingRequest {
	at := models.Timestamp{Time: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	return models.CreateListingRequest{
		Title:       strPtr("Photo session"),
		ServiceType: strPtr("photo"),
		Phone:       strPtr(" +7 993 125-52-65"),
		Price:       intPtr(150),
		AvailableAt: &at,
	}
}

func TestCreateNormalizesAndPersists(t *testing.T) {
	st := store.NewMemory()
	auditor := &recordingAudit{}
	m := listingmetrics.New(prometheus.NewRegistry())
	svc := New(st, testLogger(), WithAudit(auditor), WithMetrics(m))

	created, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.Equal(t, "+79931255265", created.Phone)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, auditor.events, 1)
	assert.Equal(t, audit.ActionCreated, auditor.events[0].Action)
	assert.Equal(t, created.ID, auditor.events[0].ListingID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingsCreated))
}

func TestCreateValidationFailureNeverTouchesStore(t *testing.T) {
	st := store.NewMemory()
	auditor := &recordingAudit{}
	svc := New(st, testLogger(), WithAudit(auditor))

	req := validCreate()
	req.Phone = strPtr("12345")
	req.Title = strPtr("  ")

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Len(t, dErrors.FieldsOf(err), 2)

	listings, err := st.List(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Empty(t, auditor.events)
}

func TestGetTranslatesNotFound(t *testing.T) {
	svc := New(store.NewMemory(), testLogger())

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestGetReadsThroughCache(t *testing.T) {
	st := store.NewMemory()
	c := newFakeCache()
	svc := New(st, testLogger(), WithCache(c))
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	// First read populates the cache.
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Contains(t, c.entries, created.ID)

	// Remove the record behind the cache's back: the cached copy still
	// serves until invalidated.
	require.NoError(t, st.Delete(ctx, created.ID))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateAppliesPatchAndInvalidatesCache(t *testing.T) {
	st := store.NewMemory()
	c := newFakeCache()
	auditor := &recordingAudit{}
	svc := New(st, testLogger(), WithCache(c), WithAudit(auditor))
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, models.UpdateListingRequest{
		Phone: strPtr("+7 926 999-88-77"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+79269998877", updated.Phone)
	assert.Equal(t, created.Title, updated.Title)
	assert.Contains(t, c.invalidated, created.ID)

	require.Len(t, auditor.events, 2)
	assert.Equal(t, audit.ActionUpdated, auditor.events[1].Action)
}

func TestUpdateEmptyPatchReturnsRecordWithoutMutation(t *testing.T) {
	st := store.NewMemory()
	auditor := &recordingAudit{}
	svc := New(st, testLogger(), WithAudit(auditor))
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, models.UpdateListingRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Only the create event; an empty patch is not a mutation.
	assert.Len(t, auditor.events, 1)
}

func TestUpdateValidationFailureLeavesRecordUnchanged(t *testing.T) {
	st := store.NewMemory()
	svc := New(st, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, models.UpdateListingRequest{Phone: strPtr("bogus")})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "+79931255265", got.Phone)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := New(store.NewMemory(), testLogger())

	_, err := svc.Update(context.Background(), 404, models.UpdateListingRequest{Price: intPtr(1)})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeleteEmitsAuditAndIsTerminal(t *testing.T) {
	st := store.NewMemory()
	c := newFakeCache()
	auditor := &recordingAudit{}
	svc := New(st, testLogger(), WithCache(c), WithAudit(auditor))
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Contains(t, c.invalidated, created.ID)
	require.Len(t, auditor.events, 2)
	assert.Equal(t, audit.ActionDeleted, auditor.events[1].Action)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
