package repository

import (
	"context"
	"testing"
	"time"

	"backoffice/config"
	client "backoffice/internal/database/client"
	"backoffice/internal/telemetry"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableCache(t *testing.T) *CatalogCacheRepository {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCatalogCacheRepository(&telemetry.Trace{}, client.NewRedisClientFrom(rdb, "backoffice"), &config.Configuration{})
}

func TestCatalogCacheKey(t *testing.T) {
	cache := unreachableCache(t)
	assert.Equal(t, "backoffice:catalog:positions", cache.buildKey("positions"))
}

func TestCatalogCacheInvalidateNothing(t *testing.T) {
	assert.NoError(t, unreachableCache(t).Invalidate(context.Background()))
}

func TestCatalogCacheReportsConnectionErrors(t *testing.T) {
	cache := unreachableCache(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var positions []string
	hit, err := cache.Get(ctx, "positions", &positions)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, cache.Set(ctx, "positions", []string{"Store Staff"}))
}
