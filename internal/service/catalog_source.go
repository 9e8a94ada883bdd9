package service

import (
	"context"
	"fmt"

	"backoffice/config"
	"backoffice/internal/core"
	"backoffice/internal/database/mongodb/model"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	redisRepo "backoffice/internal/database/redis/repository"
	"backoffice/internal/organization"
	"backoffice/internal/telemetry"

	"go.uber.org/zap"
)

// CatalogSource 取得單一參考資料集合；失敗時回傳 *organization.NetworkError
type CatalogSource interface {
	Fetch(ctx context.Context, kind organization.CollectionKind) (any, error)
}

// CatalogCache 參考資料快取（Redis）
type CatalogCache interface {
	Get(ctx context.Context, collection string, dest any) (bool, error)
	Set(ctx context.Context, collection string, value any) error
	Invalidate(ctx context.Context, collections ...string) error
}

// MongoCatalogSource 由 MongoDB 讀取；職位、超市、倉庫、地址可走 Redis 快取，員工永遠讀資料庫
type MongoCatalogSource struct {
	logger       *zap.Logger
	trace        *telemetry.Trace
	metric       *telemetry.Metric
	repositories *mongoRepo.MongoDBRepository
	cache        CatalogCache
	cacheEnabled bool
}

func NewMongoCatalogSource(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	repositories *mongoRepo.MongoDBRepository,
	redis *redisRepo.RedisRepository,
) *MongoCatalogSource {
	return &MongoCatalogSource{
		logger:       logger,
		trace:        trace,
		metric:       metric,
		repositories: repositories,
		cache:        redis.CatalogCache,
		cacheEnabled: config.Catalog.CacheEnabled,
	}
}

// Cacheable 員工資料會隨每次送出變動，不進快取
func Cacheable(kind organization.CollectionKind) bool {
	return kind != organization.CollectionEmployees
}

func (s *MongoCatalogSource) Fetch(ctx context.Context, kind organization.CollectionKind) (data any, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanCatalogFetch))
	meta := core.TraceCatalogFetchMeta{Collection: string(kind), Source: "mongo"}
	defer func() {
		status := "ok"
		if returnedError != nil {
			status = "error"
			msg := returnedError.Error()
			meta.Error = &msg
		}
		s.trace.ApplyTraceAttributes(span, meta)
		telemetry.Inc(s.metric.CatalogFetchTotal, string(kind), meta.Source, status)
		end(returnedError)
	}()

	useCache := s.cacheEnabled && s.cache != nil && Cacheable(kind)
	if useCache {
		cached, hit := s.fromCache(ctx, kind)
		if hit {
			meta.Source = "cache"
			meta.Count = count(cached)
			return cached, nil
		}
	}

	data, err := s.fromMongo(ctx, kind)
	if err != nil {
		returnedError = &organization.NetworkError{Op: "fetch " + string(kind), Err: err}
		return nil, returnedError
	}
	meta.Count = count(data)
	if useCache {
		if err := s.cache.Set(ctx, string(kind), data); err != nil {
			s.logger.Warn("catalog cache set failed", zap.String("collection", string(kind)), zap.Error(err))
		}
	}
	return data, nil
}

// Refresh 直接讀資料庫並覆寫快取（cron 預熱用）
func (s *MongoCatalogSource) Refresh(ctx context.Context, kind organization.CollectionKind) (int, error) {
	data, err := s.fromMongo(ctx, kind)
	if err != nil {
		return 0, &organization.NetworkError{Op: "refresh " + string(kind), Err: err}
	}
	if s.cacheEnabled && s.cache != nil && Cacheable(kind) {
		if err := s.cache.Set(ctx, string(kind), data); err != nil {
			return 0, err
		}
	}
	return count(data), nil
}

// Invalidate 參考資料寫入後呼叫
func (s *MongoCatalogSource) Invalidate(ctx context.Context, kinds ...organization.CollectionKind) error {
	if s.cache == nil {
		return nil
	}
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if Cacheable(k) {
			names = append(names, string(k))
		}
	}
	return s.cache.Invalidate(ctx, names...)
}

// fromCache 快取讀取失敗視為未命中
func (s *MongoCatalogSource) fromCache(ctx context.Context, kind organization.CollectionKind) (any, bool) {
	var (
		hit bool
		err error
		out any
	)
	switch kind {
	case organization.CollectionPositions:
		var v []organization.Position
		hit, err = s.cache.Get(ctx, string(kind), &v)
		out = v
	case organization.CollectionSupermarkets, organization.CollectionWarehouses:
		var v []organization.Workplace
		hit, err = s.cache.Get(ctx, string(kind), &v)
		out = v
	case organization.CollectionAddresses:
		var v []organization.Address
		hit, err = s.cache.Get(ctx, string(kind), &v)
		out = v
	default:
		return nil, false
	}
	if err != nil {
		s.logger.Warn("catalog cache get failed", zap.String("collection", string(kind)), zap.Error(err))
		return nil, false
	}
	return out, hit
}

func (s *MongoCatalogSource) fromMongo(ctx context.Context, kind organization.CollectionKind) (any, error) {
	switch kind {
	case organization.CollectionPositions:
		docs, err := s.repositories.Positions.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]organization.Position, len(docs))
		for i, d := range docs {
			out[i] = d.ToDomain()
		}
		return out, nil
	case organization.CollectionSupermarkets:
		docs, err := s.repositories.Supermarkets.List(ctx)
		if err != nil {
			return nil, err
		}
		return workplacesToDomain(docs, organization.WorkplaceSupermarket), nil
	case organization.CollectionWarehouses:
		docs, err := s.repositories.Warehouses.List(ctx)
		if err != nil {
			return nil, err
		}
		return workplacesToDomain(docs, organization.WorkplaceWarehouse), nil
	case organization.CollectionAddresses:
		docs, err := s.repositories.Addresses.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]organization.Address, len(docs))
		for i, d := range docs {
			out[i] = d.ToDomain()
		}
		return out, nil
	case organization.CollectionEmployees:
		docs, err := s.repositories.Employees.List(ctx, nil)
		if err != nil {
			return nil, err
		}
		out := make([]organization.Employee, len(docs))
		for i, d := range docs {
			out[i] = d.ToDomain()
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown collection %q", kind)
}

func workplacesToDomain(docs []*model.Workplace, kind organization.WorkplaceKind) []organization.Workplace {
	out := make([]organization.Workplace, len(docs))
	for i, d := range docs {
		out[i] = d.ToDomain(kind)
	}
	return out
}

func count(data any) int {
	switch v := data.(type) {
	case []organization.Position:
		return len(v)
	case []organization.Workplace:
		return len(v)
	case []organization.Address:
		return len(v)
	case []organization.Employee:
		return len(v)
	}
	return 0
}
