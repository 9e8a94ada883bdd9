package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache 以 JSON 保存，行為與 Redis 版本一致
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func (c *fakeCache) Get(_ context.Context, collection string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[collection]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, collection string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[collection] = raw
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, collections ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range collections {
		delete(c.entries, name)
	}
	c.invalidated = append(c.invalidated, collections...)
	return nil
}

func TestCatalogCollection(t *testing.T) {
	source := newFakeSource()
	service := NewCatalogService(&telemetry.Trace{}, source)

	resp, err := service.Collection(context.Background(), organization.CollectionSupermarkets)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, organization.CollectionSupermarkets, resp.Collection)
}

func TestCatalogCollectionHidesEmployees(t *testing.T) {
	source := newFakeSource()
	service := NewCatalogService(&telemetry.Trace{}, source)

	for _, kind := range []organization.CollectionKind{organization.CollectionEmployees, "salaries"} {
		_, err := service.Collection(context.Background(), kind)
		requireCode(t, err, cErr.NOT_FOUND)
	}
	assert.Zero(t, source.callCount(organization.CollectionEmployees))
}

func TestCatalogCollectionSourceFailure(t *testing.T) {
	source := newFakeSource()
	source.fail(organization.CollectionPositions, &organization.NetworkError{Op: "fetch positions", Err: errUnreachable})
	service := NewCatalogService(&telemetry.Trace{}, source)

	_, err := service.Collection(context.Background(), organization.CollectionPositions)
	requireCode(t, err, cErr.DATABASE_ERROR)
}

func TestMongoCatalogSourceServesCacheHits(t *testing.T) {
	cache := &fakeCache{entries: map[string][]byte{}}
	require.NoError(t, cache.Set(context.Background(), string(organization.CollectionPositions), []organization.Position{
		{ID: 1, Name: "Store Staff", Category: organization.CategoryStoreStaff},
	}))
	source := &MongoCatalogSource{
		logger:       zap.NewNop(),
		trace:        &telemetry.Trace{},
		metric:       &telemetry.Metric{},
		cache:        cache,
		cacheEnabled: true,
	}

	data, err := source.Fetch(context.Background(), organization.CollectionPositions)
	require.NoError(t, err)
	positions, ok := data.([]organization.Position)
	require.True(t, ok)
	require.Len(t, positions, 1)
	assert.Equal(t, organization.CategoryStoreStaff, positions[0].Category)
}

func TestMongoCatalogSourceInvalidateSkipsEmployees(t *testing.T) {
	cache := &fakeCache{entries: map[string][]byte{}}
	source := &MongoCatalogSource{logger: zap.NewNop(), cache: cache}

	require.NoError(t, source.Invalidate(context.Background(), organization.Collections()...))
	assert.ElementsMatch(t, []string{"positions", "supermarkets", "warehouses", "addresses"}, cache.invalidated)
	assert.False(t, Cacheable(organization.CollectionEmployees))
}
