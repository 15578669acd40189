package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type formatting struct {
	Bold  bool
	Color string
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, formatting]("toolbar", DefaultExpiration, DefaultCleanupInterval)
	want := formatting{Bold: true, Color: "#ff0000"}
	cache.Set(context.Background(), "3:0.1-0.4", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "3:0.1-0.4")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("toolbar", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "nope")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("toolbar", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("k", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "k")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("toolbar", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "k", "v", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("toolbar", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)
	cache.Set(ctx, "c", 3, DefaultExpiration)
	require.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	require.Equal(t, 1, cache.Len())
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}
