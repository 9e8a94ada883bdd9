package service

import (
	"context"

	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"
)

// CatalogService 唯讀參考資料
type CatalogService struct {
	trace  *telemetry.Trace
	source CatalogSource
}

func NewCatalogService(trace *telemetry.Trace, source CatalogSource) *CatalogService {
	return &CatalogService{trace: trace, source: source}
}

// Collection 員工名單不經由這裡提供
func (s *CatalogService) Collection(ctx context.Context, kind organization.CollectionKind) (*dto.CatalogCollectionResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if kind == organization.CollectionEmployees || !isCollection(kind) {
		return nil, cErr.NotFound("unknown catalog collection " + string(kind))
	}
	data, err := s.source.Fetch(ctx, kind)
	if err != nil {
		return nil, toAppError(err)
	}
	return &dto.CatalogCollectionResponseDto{Collection: kind, Count: count(data), Items: data}, nil
}

func isCollection(kind organization.CollectionKind) bool {
	for _, k := range organization.Collections() {
		if k == kind {
			return true
		}
	}
	return false
}
