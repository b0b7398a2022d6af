package stores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	fail  bool
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) FetchStores(context.Context, models.Location) ([]models.Store, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("backend down")
	}
	return []models.Store{{ID: "st-1", Name: "Test Pharmacy", DistanceKm: 2.0}}, nil
}

func setupCache(t *testing.T, inner Provider) (*CachedProvider, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCachedProvider(inner, client, time.Minute, logger.NewTestLogger(t)), mr
}

func TestCachedProviderReadThrough(t *testing.T) {
	inner := &countingProvider{}
	cached, _ := setupCache(t, inner)
	loc := models.Location{Latitude: 12.97, Longitude: 77.59}

	first, err := cached.FetchStores(context.Background(), loc)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.FetchStores(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second fetch must come from cache")
}

func TestCachedProviderDistinctLocations(t *testing.T) {
	inner := &countingProvider{}
	cached, _ := setupCache(t, inner)

	_, err := cached.FetchStores(context.Background(), models.Location{Latitude: 12.97, Longitude: 77.59})
	require.NoError(t, err)
	_, err = cached.FetchStores(context.Background(), models.Location{Latitude: 13.10, Longitude: 77.59})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProviderCorruptEntryRefetched(t *testing.T) {
	inner := &countingProvider{}
	cached, mr := setupCache(t, inner)
	loc := models.Location{Latitude: 12.97, Longitude: 77.59}

	require.NoError(t, mr.Set(cached.cacheKey(loc), "{not json"))

	out, err := cached.FetchStores(context.Background(), loc)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedProviderInnerErrorPropagates(t *testing.T) {
	inner := &countingProvider{fail: true}
	cached, _ := setupCache(t, inner)

	_, err := cached.FetchStores(context.Background(), models.Location{})
	assert.Error(t, err)
}

func TestCachedProviderSurvivesRedisOutage(t *testing.T) {
	inner := &countingProvider{}
	cached, mr := setupCache(t, inner)
	mr.Close()

	out, err := cached.FetchStores(context.Background(), models.Location{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedProviderCacheWriteFailureIsNonFatal(t *testing.T) {
	inner := &countingProvider{}
	client, mock := redismock.NewClientMock()
	cached := NewCachedProvider(inner, client, time.Minute, logger.NewTestLogger(t))
	loc := models.Location{Latitude: 12.97, Longitude: 77.59}

	mock.ExpectGet(cached.cacheKey(loc)).RedisNil()
	snapshot, _ := json.Marshal([]models.Store{{ID: "st-1", Name: "Test Pharmacy", DistanceKm: 2.0}})
	mock.ExpectSet(cached.cacheKey(loc), snapshot, time.Minute).SetErr(errors.New("OOM"))

	out, err := cached.FetchStores(context.Background(), loc)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedProviderNamePassesThrough(t *testing.T) {
	cached, _ := setupCache(t, &countingProvider{})
	assert.Equal(t, "counting", cached.Name())
}
