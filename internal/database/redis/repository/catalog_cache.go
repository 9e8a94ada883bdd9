package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backoffice/config"
	"backoffice/internal/core"
	client "backoffice/internal/database/client"
	"backoffice/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// CatalogCacheRepository 參考資料（職位 / 超市 / 倉庫 / 地址）的 JSON 快取
type CatalogCacheRepository struct {
	trace  *telemetry.Trace
	client *client.RedisClient
	ttl    time.Duration
}

func NewCatalogCacheRepository(trace *telemetry.Trace, redisClient *client.RedisClient, config *config.Configuration) *CatalogCacheRepository {
	return &CatalogCacheRepository{trace: trace, client: redisClient, ttl: config.Catalog.CacheTTLDuration()}
}

// Get 快取不存在時 hit = false 且 err = nil
func (repository *CatalogCacheRepository) Get(contextValue context.Context, collection string, dest any) (hit bool, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	traceMetadata := core.TraceCacheMeta{Key: repository.buildKey(collection), Op: "get"}
	raw, getError := repository.client.Client().Get(contextValue, traceMetadata.Key).Bytes()
	if errors.Is(getError, redis.Nil) {
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return false, nil
	}
	if getError != nil {
		returnedError = getError
		return false, returnedError
	}
	if returnedError = json.Unmarshal(raw, dest); returnedError != nil {
		return false, returnedError
	}
	traceMetadata.Hit, traceMetadata.Bytes = true, len(raw)
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return true, nil
}

func (repository *CatalogCacheRepository) Set(contextValue context.Context, collection string, value any) (returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	raw, marshalError := json.Marshal(value)
	if marshalError != nil {
		returnedError = marshalError
		return returnedError
	}
	traceMetadata := core.TraceCacheMeta{Key: repository.buildKey(collection), Op: "set", Bytes: len(raw)}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	returnedError = repository.client.Client().Set(contextValue, traceMetadata.Key, raw, repository.ttl).Err()
	return returnedError
}

// Invalidate 刪除指定集合的快取
func (repository *CatalogCacheRepository) Invalidate(contextValue context.Context, collections ...string) (returnedError error) {
	if len(collections) == 0 {
		return nil
	}
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	keys := make([]string, len(collections))
	for i, c := range collections {
		keys[i] = repository.buildKey(c)
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceCacheMeta{Key: keys[0], Op: "invalidate"})

	returnedError = repository.client.Client().Del(contextValue, keys...).Err()
	return returnedError
}

// buildKey prefix:catalog:<collection>
func (repository *CatalogCacheRepository) buildKey(collection string) string {
	return repository.client.Key(string(core.RedisKeyCatalog), collection)
}
