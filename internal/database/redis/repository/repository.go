package repository

import (
	"github.com/google/wire"
)

// 統一管理所有 Redis repository
type RedisRepository struct {
	CatalogCache *CatalogCacheRepository
}

// 建立 Redis repository 物件
func NewRedisRepository(
	catalogCache *CatalogCacheRepository,
) *RedisRepository {
	return &RedisRepository{
		CatalogCache: catalogCache,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewCatalogCacheRepository,
	NewRedisRepository)
