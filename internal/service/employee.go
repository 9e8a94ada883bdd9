package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"backoffice/internal/core"
	fluentdModel "backoffice/internal/database/fluentd/model"
	fluentdRepo "backoffice/internal/database/fluentd/repository"
	"backoffice/internal/database/mongodb/model"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EmployeeReader 讀取單一員工作為編輯草稿的起點
type EmployeeReader interface {
	Get(ctx context.Context, id int64) (organization.Employee, error)
}

// EmployeeWriter 儲存草稿；失敗時回傳 *organization.ValidationError 或 *organization.NetworkError
type EmployeeWriter interface {
	Save(ctx context.Context, draft organization.Employee) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type employeeStore interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Replace(ctx context.Context, employee *model.Employee) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	SetSalaries(ctx context.Context, salaries map[int64]primitive.Decimal128) (int64, error)
}

type employeeAuditor interface {
	LogEmployeeAudit(ctx context.Context, audit fluentdModel.EmployeeAudit) error
}

type catalogSnapshotter interface {
	Snapshot(ctx context.Context) (*organization.Catalog, error)
}

type EmployeeService struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	employees employeeStore
	catalogs  catalogSnapshotter
	audit     employeeAuditor
}

func NewEmployeeService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	mongodb *mongoRepo.MongoDBRepository,
	loader *CatalogLoader,
	fluentd *fluentdRepo.FluentdRepository,
) *EmployeeService {
	return &EmployeeService{logger: logger, trace: trace, employees: mongodb.Employees, catalogs: loader, audit: fluentd.Logs}
}

// Get 實作 EmployeeReader
func (s *EmployeeService) Get(ctx context.Context, id int64) (organization.Employee, error) {
	doc, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return organization.Employee{}, organization.ErrNotFound
		}
		return organization.Employee{}, &organization.NetworkError{Op: "get employee", Err: err}
	}
	return doc.ToDomain(), nil
}

// Save 以最新的參考資料重新驗證後寫入；ID = 0 時新增
func (s *EmployeeService) Save(ctx context.Context, draft organization.Employee) (_ int64, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if violations := organization.Validate(draft, catalog); !violations.Empty() {
		return 0, &organization.ValidationError{Violations: violations}
	}
	doc, err := model.EmployeeFromDomain(draft)
	if err != nil {
		return 0, organization.NewValidationError(organization.FieldViolation{
			Field:   organization.FieldSalary,
			Code:    organization.CodeRejected,
			Message: err.Error(),
		})
	}

	meta := core.TraceEmployeeWriteMeta{Op: "update", EmployeeID: draft.ID}
	action := "update"
	if draft.ID == 0 {
		meta.Op, action = "create", "create"
		created, err := s.employees.Create(ctx, doc)
		if err != nil {
			return 0, &organization.NetworkError{Op: "create employee", Err: err}
		}
		doc = created
		meta.EmployeeID = created.ID
	} else {
		matched, err := s.employees.Replace(ctx, doc)
		if err != nil {
			return 0, &organization.NetworkError{Op: "update employee", Err: err}
		}
		meta.MatchedCount = matched
		if matched == 0 {
			return 0, organization.ErrNotFound
		}
	}
	s.trace.ApplyTraceAttributes(span, meta)
	s.record(ctx, action, doc)
	return doc.ID, nil
}

// Delete 實作 EmployeeWriter
func (s *EmployeeService) Delete(ctx context.Context, id int64) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	deleted, err := s.employees.DeleteByID(ctx, id)
	if err != nil {
		return &organization.NetworkError{Op: "delete employee", Err: err}
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeWriteMeta{Op: "delete", EmployeeID: id, ModifiedCount: deleted})
	if deleted == 0 {
		return organization.ErrNotFound
	}
	s.record(ctx, "delete", &model.Employee{ID: id})
	return nil
}

// record 稽核失敗只記 log，不影響寫入結果
func (s *EmployeeService) record(ctx context.Context, action string, doc *model.Employee) {
	actor := ActorFrom(ctx)
	audit := fluentdModel.EmployeeAudit{
		Action:        action,
		EmployeeID:    doc.ID,
		Actor:         actor.Username,
		Role:          actor.Role.String(),
		SessionID:     sessionIDFrom(ctx),
		PositionID:    doc.PositionID,
		WorkplaceKind: doc.WorkplaceKind,
		WorkplaceID:   doc.WorkplaceID,
		ManagerID:     doc.ManagerID,
	}
	if err := s.audit.LogEmployeeAudit(ctx, audit); err != nil {
		s.logger.Warn("employee audit failed", zap.String("action", action), zap.Int64("employeeId", doc.ID), zap.Error(err))
	}
}

// List search 為空時回傳全部。姓名與職稱做不分大小寫的子序列比對（"nvk" 會命中 "Novak"）；
// 員工、職位、工作地點 id 與薪資則必須完全相同。positionID 不為 0 時只列該職位
func (s *EmployeeService) List(ctx context.Context, search string, positionID int64) (*dto.EmployeeListResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	all := catalog.Employees()
	resp := &dto.EmployeeListResponseDto{Total: len(all), Employees: []*dto.EmployeeResponseDto{}}
	for _, e := range all {
		if positionID != 0 && e.PositionID != positionID {
			continue
		}
		item := toEmployeeResponse(e, catalog)
		if search == "" || matchesSearch(search, item) {
			resp.Employees = append(resp.Employees, item)
		}
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeListMeta{Search: search, Total: resp.Total, ResultCount: len(resp.Employees)})
	return resp, nil
}

func matchesSearch(search string, item *dto.EmployeeResponseDto) bool {
	if fuzzy.MatchNormalizedFold(search, item.FullName()) || fuzzy.MatchNormalizedFold(search, item.PositionName) {
		return true
	}
	term := strings.TrimSpace(search)
	for _, id := range []int64{item.ID, item.PositionID, item.Workplace.ID} {
		if id != 0 && term == strconv.FormatInt(id, 10) {
			return true
		}
	}
	if amount, err := decimal.NewFromString(term); err == nil && item.Salary.Valid {
		return item.Salary.Decimal.Equal(amount)
	}
	return false
}

func (s *EmployeeService) Detail(ctx context.Context, id int64) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	e, ok := catalog.Employee(id)
	if !ok {
		return nil, cErr.NotFound("employee not found")
	}
	return toEmployeeResponse(e, catalog), nil
}

// Hierarchy 主管鏈與直屬下屬
func (s *EmployeeService) Hierarchy(ctx context.Context, id int64) (*dto.EmployeeHierarchyResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	chain, err := catalog.ManagerChain(id)
	if err != nil {
		return nil, cErr.NotFound("employee not found")
	}
	self, _ := catalog.Employee(id)
	resp := &dto.EmployeeHierarchyResponseDto{
		Employee:     toEmployeeResponse(self, catalog),
		Managers:     make([]*dto.EmployeeResponseDto, len(chain)),
		Subordinates: []*dto.EmployeeResponseDto{},
	}
	for i, m := range chain {
		resp.Managers[i] = toEmployeeResponse(m, catalog)
	}
	subordinates := catalog.Subordinates(id)
	sort.Slice(subordinates, func(i, j int) bool { return subordinates[i].ID < subordinates[j].ID })
	for _, e := range subordinates {
		resp.Subordinates = append(resp.Subordinates, toEmployeeResponse(e, catalog))
	}
	return resp, nil
}

// AverageSalary 直屬下屬的平均薪資；沒有任何薪資資料時 average 為 null
func (s *EmployeeService) AverageSalary(ctx context.Context, id int64) (*dto.AverageSalaryResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	average, ok, err := catalog.AverageSubordinateSalary(id)
	if err != nil {
		return nil, cErr.NotFound("employee not found")
	}
	resp := &dto.AverageSalaryResponseDto{ManagerID: id}
	for _, e := range catalog.Subordinates(id) {
		if e.Salary.Valid {
			resp.Counted++
		}
	}
	if ok {
		resp.Average = &average
	}
	return resp, nil
}

// Create 單次請求新增（不經編輯工作階段）
func (s *EmployeeService) Create(ctx context.Context, in *dto.EmployeeInputDto) (*dto.EmployeeResponseDto, error) {
	draft, err := in.ToDomain(0)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	id, err := s.Save(ctx, draft)
	if err != nil {
		return nil, toAppError(err)
	}
	return s.Detail(ctx, id)
}

func (s *EmployeeService) Update(ctx context.Context, id int64, in *dto.EmployeeInputDto) (*dto.EmployeeResponseDto, error) {
	draft, err := in.ToDomain(id)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	if _, err := s.Save(ctx, draft); err != nil {
		return nil, toAppError(err)
	}
	return s.Detail(ctx, id)
}

func (s *EmployeeService) Remove(ctx context.Context, id int64) error {
	return toAppError(s.Delete(ctx, id))
}

// ApplySalaryIndexation 以目前的員工資料計算調薪並一次寫回；沒有薪資的員工不受影響
func (s *EmployeeService) ApplySalaryIndexation(ctx context.Context, in *dto.SalaryIndexationDto) (_ *dto.SalaryIndexationResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	catalog, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	changes, err := organization.IndexSalaries(catalog.Employees(), *in.MinPercentage, *in.MaxPercentage)
	if err != nil {
		return nil, toAppError(err)
	}
	salaries := make(map[int64]primitive.Decimal128, len(changes))
	for _, change := range changes {
		d, err := primitive.ParseDecimal128(change.After.String())
		if err != nil {
			return nil, cErr.InternalServer(err.Error())
		}
		salaries[change.EmployeeID] = d
	}
	modified, err := s.employees.SetSalaries(ctx, salaries)
	if err != nil {
		return nil, toAppError(&organization.NetworkError{Op: "apply salary indexation", Err: err})
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeWriteMeta{Op: "salary_indexation", ModifiedCount: modified})
	s.logger.Info("salary indexation applied",
		zap.String("minPercentage", in.MinPercentage.String()),
		zap.String("maxPercentage", in.MaxPercentage.String()),
		zap.Int64("modified", modified),
	)
	for _, change := range changes {
		e, _ := catalog.Employee(change.EmployeeID)
		e.Salary = decimal.NewNullDecimal(change.After)
		if doc, err := model.EmployeeFromDomain(e); err == nil {
			s.record(ctx, "salary_indexation", doc)
		}
	}
	return &dto.SalaryIndexationResponseDto{
		MinPercentage: *in.MinPercentage,
		MaxPercentage: *in.MaxPercentage,
		Updated:       modified,
		Changes:       changes,
	}, nil
}

func toEmployeeResponse(e organization.Employee, catalog *organization.Catalog) *dto.EmployeeResponseDto {
	resp := &dto.EmployeeResponseDto{Employee: e}
	if resolved, ok := catalog.ResolveWorkplace(e.Workplace); ok {
		resp.Workplace = resolved
	}
	if p, ok := catalog.Position(e.PositionID); ok {
		resp.PositionName = p.Name
		resp.IsManager = p.Category.IsManager()
	}
	if m, ok := catalog.Employee(e.ManagerID); ok && e.HasManager() {
		resp.ManagerName = m.FullName()
	}
	return resp
}
