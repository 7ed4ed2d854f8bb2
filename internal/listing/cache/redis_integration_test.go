//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provision/internal/listing/cache"
	"provision/internal/listing/models"
	"provision/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	c := cache.NewRedis(rc.Client, time.Minute)
	ctx := context.Background()

	details := "cached details"
	listing := &models.Listing{
		ID:          7,
		Title:       "Cached",
		Details:     &details,
		ServiceType: "photo",
		Phone:       "+79161234567",
		Price:       150,
		AvailableAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := c.Get(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, listing))
		got, err := c.Get(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Cached", got.Title)
		require.NotNil(t, got.Details)
		assert.Equal(t, details, *got.Details)
		assert.True(t, got.AvailableAt.Equal(listing.AvailableAt))
	})

	t.Run("invalidate drops the key", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, 7))
		got, err := c.Get(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Invalidating an absent key is fine.
		require.NoError(t, c.Invalidate(ctx, 7))
	})
}
