package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedProvider is a read-through Redis decorator over another provider.
// Snapshots are keyed by a coarse location cell so one search session keeps
// seeing the same immutable store list. Cache failures degrade to the inner
// provider; they never fail a search.
type CachedProvider struct {
	inner  Provider
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProvider(inner Provider, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"provider": "cached"}),
	}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) FetchStores(ctx context.Context, loc models.Location) ([]models.Store, error) {
	key := p.cacheKey(loc)

	if val, err := p.client.Get(ctx, key).Result(); err == nil {
		var snapshot []models.Store
		if err := json.Unmarshal([]byte(val), &snapshot); err == nil {
			return snapshot, nil
		}
		// Corrupt entry: drop it and refetch.
		p.client.Del(ctx, key)
	}

	snapshot, err := p.inner.FetchStores(ctx, loc)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snapshot); err == nil {
		if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("snapshot cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return snapshot, nil
}

// cacheKey buckets coordinates to ~100 m cells: close-by searches share a
// snapshot, distant ones do not.
func (p *CachedProvider) cacheKey(loc models.Location) string {
	return fmt.Sprintf("stores:%s:%.3f:%.3f", p.inner.Name(), loc.Latitude, loc.Longitude)
}
