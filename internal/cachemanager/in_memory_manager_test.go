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

type agentRecord struct {
	Pubkey string
	Name   string
}

func TestNewInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, agentRecord]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	record := agentRecord{
		Name: "alice",
	}
	cache.Set(context.Background(), "pk:1", record, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "pk:1")
	require.True(t, ok)
	require.Equal(t, record, got)
}

func TestNewInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "pk-alice", "alice", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "pk-alice")
	require.True(t, ok)
	require.Equal(t, "alice", got)
}

func TestNewInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "pk-alice")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("pk-alice", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "pk-alice")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_NamedKeyType(t *testing.T) {
	type pubkey string

	cache := NewInMemoryCacheManager[pubkey, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), pubkey("pk-alice"), "alice", DefaultExpiration)

	got, ok := cache.Get(context.Background(), pubkey("pk-alice"))
	require.True(t, ok)
	require.Equal(t, "alice", got)
}

func TestNewInMemoryCacheManager_GetMultipleWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetMultiple(context.Background(), []string{})
	require.False(t, ok)
	require.Nil(t, got)
}

func TestNewInMemoryCacheManager_GetMultipleCacheHit(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("pk-alice", "alice", DefaultExpiration)
	cache.cache.Set("pk-bob", "bob", DefaultExpiration)

	got, ok := cache.GetMultiple(context.Background(), []string{"pk-alice", "pk-bob", "pk-ghost"})
	require.True(t, ok)
	require.Equal(t, map[string]string{"pk-alice": "alice", "pk-bob": "bob"}, got)
}

func TestNewInMemoryCacheManager_GetMultipleCacheMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetMultiple(context.Background(), []string{"pk-alice", "pk-bob", "pk-ghost"})
	require.False(t, ok)
	require.Nil(t, got)
}

func TestNewInMemoryCacheManager_GetMultipleWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("pk-alice", "alice", DefaultExpiration)
	cache.cache.Set("pk-bob", 123, DefaultExpiration)

	got, ok := cache.GetMultiple(context.Background(), []string{"pk-alice", "pk-bob"})
	require.True(t, ok)
	require.Equal(t, map[string]string{"pk-alice": "alice"}, got)
}

func TestNewInMemoryCacheManager_GetWithRefresh_WithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "pk-alice", time.Minute*60)
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestNewInMemoryCacheManager_GetWithRefresh_WithExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "pk-alice", "alice", DefaultExpiration)

	got, ok := cache.GetWithRefresh(context.Background(), "pk-alice", time.Minute*60)
	require.True(t, ok)
	require.Equal(t, "alice", got)
}

func TestNewInMemoryCacheManager_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)

	err := cache.Delete(context.Background())
	require.NoError(t, err)
}

func TestNewInMemoryCacheManager_DeleteExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "pk-alice", "alice", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "pk-alice")
	require.True(t, ok)
	require.Equal(t, "alice", got)

	err := cache.Delete(context.Background(), "pk-alice")
	require.NoError(t, err)

	got, ok = cache.Get(context.Background(), "pk-alice")
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestNewInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("profile-names", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "pk-alice", "alice", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "pk-alice")
	require.True(t, ok)
	require.Equal(t, "alice", got)

	err := cache.Flush(context.Background())
	require.NoError(t, err)

	got, ok = cache.Get(context.Background(), "pk-alice")
	require.False(t, ok)
	require.Equal(t, "", got)
}
