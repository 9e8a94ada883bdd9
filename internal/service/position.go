package service

import (
	"context"
	"fmt"

	"backoffice/internal/core"
	"backoffice/internal/database/mongodb/model"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type positionStore interface {
	Create(ctx context.Context, position *model.Position) (*model.Position, error)
	Replace(ctx context.Context, position *model.Position) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context, kinds ...organization.CollectionKind) error
}

// PositionService 職位維護；每次寫入後清掉職位快取，下一次快照才會讀到新資料
type PositionService struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	positions positionStore
	catalogs  catalogSnapshotter
	cache     catalogInvalidator
}

func NewPositionService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	mongodb *mongoRepo.MongoDBRepository,
	loader *CatalogLoader,
	source *MongoCatalogSource,
) *PositionService {
	return &PositionService{logger: logger, trace: trace, positions: mongodb.Positions, catalogs: loader, cache: source}
}

func (s *PositionService) Create(ctx context.Context, in *dto.PositionInputDto) (_ *dto.PositionResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	position := in.ToDomain(0)
	created, err := s.positions.Create(ctx, model.PositionFromDomain(position))
	if err != nil {
		return nil, positionStoreError("create position", err)
	}
	s.trace.ApplyTraceAttributes(span, core.TracePositionWriteMeta{Op: "create", PositionID: created.ID, Category: created.Category})
	s.invalidate(ctx)
	return &dto.PositionResponseDto{Position: created.ToDomain()}, nil
}

// Update 有人擔任的職位不能改成要求不同種類工作地點的分類，否則既有員工會違反指派規則
func (s *PositionService) Update(ctx context.Context, id int64, in *dto.PositionInputDto) (_ *dto.PositionResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	current, ok := catalog.Position(id)
	if !ok {
		return nil, cErr.NotFound("position not found")
	}
	next := in.ToDomain(id)
	holders := holdersOf(catalog, id)
	meta := core.TracePositionWriteMeta{Op: "update", PositionID: id, Category: string(next.Category), Holders: holders}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	if holders > 0 && organization.RequiredWorkplaceKind(current) != organization.RequiredWorkplaceKind(next) {
		return nil, cErr.Conflict(fmt.Sprintf("position %d is held by %d employees and its workplace kind cannot change", id, holders))
	}
	matched, err := s.positions.Replace(ctx, model.PositionFromDomain(next))
	if err != nil {
		return nil, positionStoreError("update position", err)
	}
	meta.MatchedCount = matched
	if matched == 0 {
		return nil, cErr.NotFound("position not found")
	}
	s.invalidate(ctx)
	return &dto.PositionResponseDto{Position: next, Holders: holders}, nil
}

// Delete 仍有員工擔任時拒絕
func (s *PositionService) Delete(ctx context.Context, id int64) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return toAppError(err)
	}
	holders := holdersOf(catalog, id)
	s.trace.ApplyTraceAttributes(span, core.TracePositionWriteMeta{Op: "delete", PositionID: id, Holders: holders})
	if holders > 0 {
		return cErr.Conflict(fmt.Sprintf("position %d is still held by %d employees", id, holders))
	}
	deleted, err := s.positions.DeleteByID(ctx, id)
	if err != nil {
		return positionStoreError("delete position", err)
	}
	if deleted == 0 {
		return cErr.NotFound("position not found")
	}
	s.invalidate(ctx)
	return nil
}

// invalidate 快取清除失敗只記 log；快取會在 TTL 到期後自行更新
func (s *PositionService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, organization.CollectionPositions); err != nil {
		s.logger.Warn("position cache invalidation failed", zap.Error(err))
	}
}

func holdersOf(catalog *organization.Catalog, positionID int64) int {
	n := 0
	for _, e := range catalog.Employees() {
		if e.PositionID == positionID {
			n++
		}
	}
	return n
}

func positionStoreError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return cErr.Conflict("position name already exists")
	}
	return toAppError(&organization.NetworkError{Op: op, Err: err})
}
