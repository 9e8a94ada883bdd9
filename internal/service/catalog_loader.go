package service

import (
	"context"
	"sync"

	"backoffice/internal/organization"
	"backoffice/internal/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DeliverFunc 每個集合抓取完成（或失敗）時呼叫一次；可能由多個 goroutine 同時呼叫
type DeliverFunc func(kind organization.CollectionKind, data any, err error)

// CatalogLoader 平行抓取參考資料集合
type CatalogLoader struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	source CatalogSource
}

func NewCatalogLoader(logger *zap.Logger, trace *telemetry.Trace, source CatalogSource) *CatalogLoader {
	return &CatalogLoader{logger: logger, trace: trace, source: source}
}

// Load 每個集合各自獨立：一個失敗不會取消其他集合；所有 deliver 呼叫完成後才返回
func (l *CatalogLoader) Load(ctx context.Context, kinds []organization.CollectionKind, deliver DeliverFunc) {
	ctx, _, end := l.trace.WithSpan(ctx)
	defer end(nil)

	var g errgroup.Group
	for _, kind := range kinds {
		g.Go(func() error {
			data, err := l.source.Fetch(ctx, kind)
			if err != nil {
				l.logger.Warn("catalog collection failed", zap.String("collection", string(kind)), zap.Error(err))
			}
			deliver(kind, data, err)
			return nil
		})
	}
	_ = g.Wait()
}

// Snapshot 一次載入全部集合；任何一個失敗就取消其餘並回傳該錯誤
func (l *CatalogLoader) Snapshot(ctx context.Context) (_ *organization.Catalog, returnedError error) {
	ctx, _, end := l.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	var (
		mu      sync.Mutex
		results = map[organization.CollectionKind]any{}
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range organization.Collections() {
		g.Go(func() error {
			data, err := l.source.Fetch(gctx, kind)
			if err != nil {
				return err
			}
			mu.Lock()
			results[kind] = data
			mu.Unlock()
			return nil
		})
	}
	if returnedError = g.Wait(); returnedError != nil {
		return nil, returnedError
	}

	catalog := organization.NewCatalog()
	for _, kind := range organization.Collections() {
		if returnedError = catalog.Apply(kind, results[kind]); returnedError != nil {
			return nil, returnedError
		}
	}
	return catalog, nil
}
