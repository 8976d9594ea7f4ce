package loadercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/skirace-standings-go/pkg/utils/cache"
)

func TestLoaderCache(t *testing.T) {
	ctx := context.Background()
	loads := 0
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := New(
		WithExpiration[string, int](time.Minute),
		WithClock[string, int](func() time.Time { return now }),
		WithLoader(func(ctx context.Context, key string) (*int, error) {
			loads++
			v := len(key)
			return &v, nil
		}),
	)

	v, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, *v)
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 1, loads, "served from cache")

	now = now.Add(2 * time.Minute)
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 2, loads, "expired entry reloaded")

	c.Invalidate(ctx, "abc")
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 3, loads)

	c.InvalidateAll(ctx)
	_, _ = c.Get(ctx, "abc")
	assert.Equal(t, 4, loads)
}

func TestLoaderCache_errors(t *testing.T) {
	ctx := context.Background()
	_, err := New[string, int]().Get(ctx, "x")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	boom := errors.New("boom")
	c := New(WithLoader(func(ctx context.Context, key string) (*int, error) {
		return nil, boom
	}))
	_, err = c.Get(ctx, "x")
	assert.ErrorIs(t, err, boom)
}
