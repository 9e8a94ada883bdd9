package service

import (
	"context"
	"sync"
	"testing"

	"backoffice/internal/database/mongodb/model"
	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakePositionStore 寫入後同步回 fakeSource 的職位集合；名稱唯一
type fakePositionStore struct {
	mu     sync.Mutex
	source *fakeSource
	docs   map[int64]*model.Position
	nextID int64
	err    error
}

func newFakePositionStore(source *fakeSource) *fakePositionStore {
	s := &fakePositionStore{source: source, docs: map[int64]*model.Position{}}
	for _, p := range source.data[organization.CollectionPositions].([]organization.Position) {
		s.docs[p.ID] = model.PositionFromDomain(p)
		s.nextID = max(s.nextID, p.ID)
	}
	return s
}

func (s *fakePositionStore) sync() {
	positions := make([]organization.Position, 0, len(s.docs))
	for _, doc := range s.docs {
		positions = append(positions, doc.ToDomain())
	}
	s.source.mu.Lock()
	s.source.data[organization.CollectionPositions] = positions
	s.source.mu.Unlock()
}

func (s *fakePositionStore) duplicate(name string, except int64) bool {
	for id, doc := range s.docs {
		if id != except && doc.Name == name {
			return true
		}
	}
	return false
}

var errDuplicateName = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}

func (s *fakePositionStore) Create(_ context.Context, position *model.Position) (*model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.duplicate(position.Name, 0) {
		return nil, errDuplicateName
	}
	s.nextID++
	created := *position
	created.ID = s.nextID
	s.docs[created.ID] = &created
	s.sync()
	return &created, nil
}

func (s *fakePositionStore) Replace(_ context.Context, position *model.Position) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.docs[position.ID]; !ok {
		return 0, nil
	}
	if s.duplicate(position.Name, position.ID) {
		return 0, errDuplicateName
	}
	s.docs[position.ID] = position
	s.sync()
	return 1, nil
}

func (s *fakePositionStore) DeleteByID(_ context.Context, id int64) (int64, error) {
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

type positionFixture struct {
	service *PositionService
	source  *fakeSource
	store   *fakePositionStore
	cache   *fakeCache
}

func newPositionFixture() *positionFixture {
	source := newFakeSource()
	store := newFakePositionStore(source)
	cache := &fakeCache{entries: map[string][]byte{}}
	return &positionFixture{
		service: &PositionService{
			logger:    zap.NewNop(),
			trace:     &telemetry.Trace{},
			positions: store,
			catalogs:  newTestLoader(source),
			cache:     &MongoCatalogSource{logger: zap.NewNop(), cache: cache},
		},
		source: source,
		store:  store,
		cache:  cache,
	}
}

func TestPositionCreateInvalidatesCache(t *testing.T) {
	f := newPositionFixture()

	resp, err := f.service.Create(context.Background(), &dto.PositionInputDto{Name: "  Night Shift ", Category: "store_staff"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.ID)
	assert.Equal(t, "Night Shift", resp.Name)
	assert.Equal(t, organization.CategoryStoreStaff, resp.Category)
	assert.Equal(t, []string{"positions"}, f.cache.invalidated)

	inferred, err := f.service.Create(context.Background(), &dto.PositionInputDto{Name: "Cleaner"})
	require.NoError(t, err)
	assert.Equal(t, organization.CategoryOther, inferred.Category)

	catalog, err := newTestLoader(f.source).Snapshot(context.Background())
	require.NoError(t, err)
	_, ok := catalog.Position(6)
	assert.True(t, ok)
}

func TestPositionCreateDuplicateName(t *testing.T) {
	f := newPositionFixture()

	_, err := f.service.Create(context.Background(), &dto.PositionInputDto{Name: "Accountant"})
	requireCode(t, err, cErr.CONFLICT)
	assert.Empty(t, f.cache.invalidated)
}

func TestPositionUpdate(t *testing.T) {
	cases := []struct {
		name  string
		id    int64
		input dto.PositionInputDto
		code  int
	}{
		{name: "rename keeps workplace kind", id: 1, input: dto.PositionInputDto{Name: "Shop Assistant", Category: "store_staff"}},
		{name: "held position cannot switch kind", id: 1, input: dto.PositionInputDto{Name: "Store Staff", Category: "warehouse_staff"}, code: cErr.CONFLICT},
		{name: "free position may switch kind", id: 3, input: dto.PositionInputDto{Name: "Warehouse Staff", Category: "other"}},
		{name: "manager to staff in same kind", id: 2, input: dto.PositionInputDto{Name: "Store Lead", Category: "store_staff"}},
		{name: "name taken", id: 3, input: dto.PositionInputDto{Name: "Accountant"}, code: cErr.CONFLICT},
		{name: "unknown", id: 99, input: dto.PositionInputDto{Name: "Ghost"}, code: cErr.NOT_FOUND},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPositionFixture()

			resp, err := f.service.Update(context.Background(), tc.id, &tc.input)
			if tc.code != 0 {
				requireCode(t, err, tc.code)
				assert.Empty(t, f.cache.invalidated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input.Name, resp.Name)
			assert.Equal(t, organization.Category(tc.input.Category), resp.Category)
			assert.Equal(t, []string{"positions"}, f.cache.invalidated)
		})
	}
}

func TestPositionUpdateReportsHolders(t *testing.T) {
	f := newPositionFixture()

	resp, err := f.service.Update(context.Background(), 1, &dto.PositionInputDto{Name: "Store Staff"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Holders)
	assert.Equal(t, organization.CategoryStoreStaff, resp.Category)
}

func TestPositionDelete(t *testing.T) {
	f := newPositionFixture()

	requireCode(t, f.service.Delete(context.Background(), 5), cErr.CONFLICT)
	assert.Empty(t, f.cache.invalidated)

	require.NoError(t, f.service.Delete(context.Background(), 3))
	assert.Equal(t, []string{"positions"}, f.cache.invalidated)
	assert.NotContains(t, f.store.docs, int64(3))

	requireCode(t, f.service.Delete(context.Background(), 3), cErr.NOT_FOUND)
}

func TestPositionWritesSurfaceStoreFailures(t *testing.T) {
	f := newPositionFixture()
	f.store.err = errUnreachable

	_, err := f.service.Create(context.Background(), &dto.PositionInputDto{Name: "Driver"})
	requireCode(t, err, cErr.DATABASE_ERROR)
	requireCode(t, f.service.Delete(context.Background(), 3), cErr.DATABASE_ERROR)

	f.store.err = nil
	f.source.fail(organization.CollectionEmployees, &organization.NetworkError{Op: "fetch employees", Err: errUnreachable})
	_, err = f.service.Update(context.Background(), 3, &dto.PositionInputDto{Name: "Driver"})
	requireCode(t, err, cErr.DATABASE_ERROR)
}
