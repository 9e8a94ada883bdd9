package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice/internal/access"
	fluentdModel "backoffice/internal/database/fluentd/model"
	"backoffice/internal/database/mongodb/model"
	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeStore 寫入後同步回 fakeSource 的員工集合
type fakeStore struct {
	mu     sync.Mutex
	source *fakeSource
	docs   map[int64]*model.Employee
	nextID int64
	err    error
}

func newFakeStore(source *fakeSource) *fakeStore {
	s := &fakeStore{source: source, docs: map[int64]*model.Employee{}, nextID: 100}
	for _, e := range source.data[organization.CollectionEmployees].([]organization.Employee) {
		doc, err := model.EmployeeFromDomain(e)
		if err != nil {
			panic(err)
		}
		s.docs[e.ID] = doc
	}
	return s
}

func (s *fakeStore) sync() {
	employees := make([]organization.Employee, 0, len(s.docs))
	for _, doc := range s.docs {
		employees = append(employees, doc.ToDomain())
	}
	s.source.mu.Lock()
	s.source.data[organization.CollectionEmployees] = employees
	s.source.mu.Unlock()
}

func (s *fakeStore) Create(_ context.Context, employee *model.Employee) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	created := *employee
	created.ID = s.nextID
	s.docs[created.ID] = &created
	s.sync()
	return &created, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return doc, nil
}

func (s *fakeStore) Replace(_ context.Context, employee *model.Employee) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.docs[employee.ID]; !ok {
		return 0, nil
	}
	s.docs[employee.ID] = employee
	s.sync()
	return 1, nil
}

func (s *fakeStore) DeleteByID(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	s.sync()
	return 1, nil
}

func (s *fakeStore) SetSalaries(_ context.Context, salaries map[int64]primitive.Decimal128) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	var modified int64
	for id, salary := range salaries {
		doc, ok := s.docs[id]
		if !ok {
			continue
		}
		updated := *doc
		updated.Salary = &salary
		s.docs[id] = &updated
		modified++
	}
	s.sync()
	return modified, nil
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []fluentdModel.EmployeeAudit
	err     error
}

func (a *fakeAuditor) LogEmployeeAudit(_ context.Context, audit fluentdModel.EmployeeAudit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, audit)
	return nil
}

type employeeFixture struct {
	service *EmployeeService
	source  *fakeSource
	store   *fakeStore
	audit   *fakeAuditor
}

func newEmployeeFixture() *employeeFixture {
	source := newFakeSource()
	store := newFakeStore(source)
	audit := &fakeAuditor{}
	return &employeeFixture{
		service: &EmployeeService{
			logger:    zap.NewNop(),
			trace:     &telemetry.Trace{},
			employees: store,
			catalogs:  newTestLoader(source),
			audit:     audit,
		},
		source: source,
		store:  store,
		audit:  audit,
	}
}

func warehouseStaffInput() *dto.EmployeeInputDto {
	salary := decimal.RequireFromString("31000.50")
	return &dto.EmployeeInputDto{
		FirstName:  "Ivana",
		LastName:   "Bila",
		PositionID: 3,
		Workplace:  dto.WorkplaceDto{Kind: "warehouse", ID: 1},
		ManagerID:  20,
		Salary:     &salary,
		AddressID:  1,
	}
}

func TestEmployeeCreateRecordsAudit(t *testing.T) {
	f := newEmployeeFixture()
	ctx := WithActor(context.Background(), Actor{Username: "admin", Role: access.RoleAdmin})

	resp, err := f.service.Create(ctx, warehouseStaffInput())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "North", resp.Workplace.Name)
	assert.Equal(t, "Warehouse Staff", resp.PositionName)
	assert.Equal(t, "Tomas Cerny", resp.ManagerName)
	assert.Equal(t, "31000.5", resp.Salary.Decimal.String())

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, "create", entry.Action)
	assert.Equal(t, int64(101), entry.EmployeeID)
	assert.Equal(t, "admin", entry.Actor)
	assert.Equal(t, access.RoleAdmin.String(), entry.Role)
	assert.Equal(t, string(organization.WorkplaceWarehouse), entry.WorkplaceKind)
}

func TestEmployeeCreateRejectsInvalidDraft(t *testing.T) {
	f := newEmployeeFixture()
	in := warehouseStaffInput()
	in.ManagerID = 10

	_, err := f.service.Create(context.Background(), in)
	appErr := requireCode(t, err, cErr.VALIDATION_FAILED)
	violations := appErr.Data().(organization.Violations)
	assert.Equal(t, []string{organization.CodeWorkplaceMismatch}, violations.Codes(organization.FieldManager))
	assert.Empty(t, f.audit.entries)
	assert.Len(t, f.store.docs, 5)
}

func TestEmployeeCreateRejectsUnknownWorkplaceKind(t *testing.T) {
	f := newEmployeeFixture()
	in := warehouseStaffInput()
	in.Workplace.Kind = "office"

	_, err := f.service.Create(context.Background(), in)
	requireCode(t, err, cErr.BAD_REQUEST_BODY)
}

func TestEmployeeUpdate(t *testing.T) {
	f := newEmployeeFixture()
	salary := decimal.RequireFromString("29500")
	in := &dto.EmployeeInputDto{
		FirstName:  "Eva",
		LastName:   "Dvorakova",
		PositionID: 1,
		Workplace:  dto.WorkplaceDto{Kind: "supermarket", ID: 1},
		ManagerID:  10,
		Salary:     &salary,
	}

	resp, err := f.service.Update(context.Background(), 12, in)
	require.NoError(t, err)
	assert.Equal(t, "Dvorakova", resp.LastName)
	assert.Equal(t, "Jana Novak", resp.ManagerName)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "update", f.audit.entries[0].Action)

	_, err = f.service.Update(context.Background(), 999, in)
	requireCode(t, err, cErr.NOT_FOUND)
}

func TestEmployeeUpdateRejectsSelfManagement(t *testing.T) {
	f := newEmployeeFixture()
	in := &dto.EmployeeInputDto{
		FirstName:  "Jana",
		LastName:   "Novak",
		PositionID: 2,
		Workplace:  dto.WorkplaceDto{Kind: "supermarket", ID: 1},
		ManagerID:  10,
	}

	_, err := f.service.Update(context.Background(), 10, in)
	appErr := requireCode(t, err, cErr.VALIDATION_FAILED)
	assert.True(t, appErr.Data().(organization.Violations).Has(organization.FieldManager))
}

func TestEmployeeSaveStoreFailure(t *testing.T) {
	f := newEmployeeFixture()
	f.store.err = errUnreachable
	draft, err := warehouseStaffInput().ToDomain(0)
	require.NoError(t, err)

	_, err = f.service.Save(context.Background(), draft)
	var networkErr *organization.NetworkError
	require.ErrorAs(t, err, &networkErr)
	assert.ErrorIs(t, err, errUnreachable)
}

func TestEmployeeSaveIgnoresAuditFailure(t *testing.T) {
	f := newEmployeeFixture()
	f.audit.err = errors.New("fluentd down")
	draft, err := warehouseStaffInput().ToDomain(0)
	require.NoError(t, err)

	id, err := f.service.Save(withSessionID(context.Background(), "session-1"), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
}

func TestEmployeeAuditCarriesSessionID(t *testing.T) {
	f := newEmployeeFixture()
	draft, err := warehouseStaffInput().ToDomain(0)
	require.NoError(t, err)

	_, err = f.service.Save(withSessionID(context.Background(), "session-1"), draft)
	require.NoError(t, err)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "session-1", f.audit.entries[0].SessionID)
	assert.Equal(t, access.RolePublic.String(), f.audit.entries[0].Role)
}

func TestEmployeeGet(t *testing.T) {
	f := newEmployeeFixture()

	e, err := f.service.Get(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(10), e.ManagerID)

	_, err = f.service.Get(context.Background(), 999)
	assert.ErrorIs(t, err, organization.ErrNotFound)
}

func TestEmployeeRemove(t *testing.T) {
	f := newEmployeeFixture()

	require.NoError(t, f.service.Remove(context.Background(), 30))
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "delete", f.audit.entries[0].Action)

	requireCode(t, f.service.Remove(context.Background(), 30), cErr.NOT_FOUND)

	f.store.err = errUnreachable
	requireCode(t, f.service.Remove(context.Background(), 11), cErr.DATABASE_ERROR)
}

func TestEmployeeList(t *testing.T) {
	f := newEmployeeFixture()

	cases := []struct {
		name       string
		search     string
		positionID int64
		want       []int64
	}{
		{name: "all", want: []int64{10, 11, 12, 20, 30}},
		{name: "by name ignores case", search: "NOVA", want: []int64{10}},
		{name: "by position title", search: "wareh", want: []int64{20}},
		{name: "by position id", positionID: 1, want: []int64{11, 12}},
		{name: "search and position", search: "dvor", positionID: 1, want: []int64{12}},
		{name: "subsequence of name", search: "nvk", want: []int64{10}},
		{name: "by employee id", search: "10", want: []int64{10}},
		{name: "by position id in search", search: "5", want: []int64{30}},
		{name: "by salary", search: "42000", want: []int64{10}},
		{name: "by salary with scale", search: "28000.00", want: []int64{11}},
		{name: "workplace id with position filter", search: "1", positionID: 4, want: []int64{20}},
		{name: "no match", search: "zzz", want: []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := f.service.List(context.Background(), tc.search, tc.positionID)
			require.NoError(t, err)
			assert.Equal(t, 5, resp.Total)
			got := make([]int64, 0, len(resp.Employees))
			for _, e := range resp.Employees {
				got = append(got, e.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEmployeeListCatalogUnavailable(t *testing.T) {
	f := newEmployeeFixture()
	f.source.fail(organization.CollectionPositions, &organization.NetworkError{Op: "fetch positions", Err: errUnreachable})

	_, err := f.service.List(context.Background(), "", 0)
	requireCode(t, err, cErr.DATABASE_ERROR)
}

func TestEmployeeDetailAndHierarchy(t *testing.T) {
	f := newEmployeeFixture()

	detail, err := f.service.Detail(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, detail.IsManager)
	assert.Equal(t, "Store Manager", detail.PositionName)

	h, err := f.service.Hierarchy(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, h.Managers, 1)
	assert.Equal(t, int64(10), h.Managers[0].ID)
	assert.Empty(t, h.Subordinates)

	h, err = f.service.Hierarchy(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, h.Managers)
	require.Len(t, h.Subordinates, 2)
	assert.Equal(t, int64(11), h.Subordinates[0].ID)

	_, err = f.service.Detail(context.Background(), 999)
	requireCode(t, err, cErr.NOT_FOUND)
	_, err = f.service.Hierarchy(context.Background(), 999)
	requireCode(t, err, cErr.NOT_FOUND)
}

func TestEmployeeAverageSalary(t *testing.T) {
	f := newEmployeeFixture()

	resp, err := f.service.AverageSalary(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, resp.Average)
	assert.Equal(t, "28000", resp.Average.String())
	assert.Equal(t, 1, resp.Counted)

	resp, err = f.service.AverageSalary(context.Background(), 30)
	require.NoError(t, err)
	assert.Nil(t, resp.Average)
	assert.Zero(t, resp.Counted)

	_, err = f.service.AverageSalary(context.Background(), 999)
	requireCode(t, err, cErr.NOT_FOUND)
}

func TestEmployeeSalaryIndexation(t *testing.T) {
	f := newEmployeeFixture()
	ctx := WithActor(context.Background(), Actor{Username: "admin", Role: access.RoleAdmin})
	low, high := decimal.RequireFromString("2"), decimal.RequireFromString("5")

	resp, err := f.service.ApplySalaryIndexation(ctx, &dto.SalaryIndexationDto{MinPercentage: &low, MaxPercentage: &high})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Updated)
	require.Len(t, resp.Changes, 2)
	assert.Equal(t, int64(10), resp.Changes[0].EmployeeID)
	assert.Equal(t, "42840.00", resp.Changes[0].After.StringFixed(2))
	assert.Equal(t, "29400.00", resp.Changes[1].After.StringFixed(2))

	detail, err := f.service.Detail(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "29400", detail.Salary.Decimal.String())

	untouched, err := f.service.Detail(ctx, 12)
	require.NoError(t, err)
	assert.False(t, untouched.Salary.Valid)

	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, "salary_indexation", f.audit.entries[0].Action)
	assert.Equal(t, "admin", f.audit.entries[0].Actor)
}

func TestEmployeeSalaryIndexationRejectsInvertedBand(t *testing.T) {
	f := newEmployeeFixture()
	low, high := decimal.RequireFromString("6"), decimal.RequireFromString("1")

	_, err := f.service.ApplySalaryIndexation(context.Background(), &dto.SalaryIndexationDto{MinPercentage: &low, MaxPercentage: &high})
	appErr := requireCode(t, err, cErr.VALIDATION_FAILED)
	assert.Equal(t, []string{organization.CodeOutOfRange}, appErr.Data().(organization.Violations).Codes(organization.FieldSalary))
	assert.Empty(t, f.audit.entries)
}

func TestEmployeeSalaryIndexationStoreFailure(t *testing.T) {
	f := newEmployeeFixture()
	f.store.err = errUnreachable
	low, high := decimal.RequireFromString("1"), decimal.RequireFromString("2")

	_, err := f.service.ApplySalaryIndexation(context.Background(), &dto.SalaryIndexationDto{MinPercentage: &low, MaxPercentage: &high})
	requireCode(t, err, cErr.DATABASE_ERROR)
}
