package service

import (
	"context"
	"sync"
	"testing"

	"backoffice/internal/organization"
	"backoffice/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLoader(source CatalogSource) *CatalogLoader {
	return NewCatalogLoader(zap.NewNop(), &telemetry.Trace{}, source)
}

func TestLoadDeliversEveryCollectionEvenWhenOneFails(t *testing.T) {
	source := newFakeSource()
	source.fail(organization.CollectionWarehouses, errUnreachable)

	var (
		mu        sync.Mutex
		delivered = map[organization.CollectionKind]error{}
	)
	newTestLoader(source).Load(context.Background(), organization.Collections(), func(kind organization.CollectionKind, data any, err error) {
		mu.Lock()
		defer mu.Unlock()
		delivered[kind] = err
	})

	require.Len(t, delivered, len(organization.Collections()))
	assert.ErrorIs(t, delivered[organization.CollectionWarehouses], errUnreachable)
	for _, kind := range []organization.CollectionKind{
		organization.CollectionPositions,
		organization.CollectionSupermarkets,
		organization.CollectionEmployees,
		organization.CollectionAddresses,
	} {
		assert.NoError(t, delivered[kind], kind)
	}
}

func TestLoadAppliesCollectionsAsTheyArrive(t *testing.T) {
	source := newFakeSource()
	release := source.hold(organization.CollectionPositions)

	catalog := organization.NewCatalog()
	var mu sync.Mutex
	arrived := make(chan organization.CollectionKind, len(organization.Collections()))
	done := make(chan struct{})
	go func() {
		defer close(done)
		newTestLoader(source).Load(context.Background(), organization.Collections(), func(kind organization.CollectionKind, data any, err error) {
			mu.Lock()
			defer mu.Unlock()
			assert.NoError(t, err)
			assert.NoError(t, catalog.Apply(kind, data))
			arrived <- kind
		})
	}()

	for range len(organization.Collections()) - 1 {
		<-arrived
	}
	mu.Lock()
	assert.False(t, catalog.Ready())
	assert.Equal(t, []organization.CollectionKind{organization.CollectionPositions}, catalog.Pending())
	mu.Unlock()

	release()
	<-done
	assert.True(t, catalog.Ready())
	assert.Empty(t, catalog.Pending())
}

func TestSnapshotBuildsFullCatalog(t *testing.T) {
	catalog, err := newTestLoader(newFakeSource()).Snapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, catalog.Ready())
	assert.Len(t, catalog.Employees(), 5)
	assert.Len(t, catalog.Workplaces(organization.WorkplaceSupermarket), 2)
}

func TestSnapshotFailsWhenAnyCollectionFails(t *testing.T) {
	source := newFakeSource()
	source.fail(organization.CollectionEmployees, errUnreachable)
	source.hold(organization.CollectionAddresses)

	catalog, err := newTestLoader(source).Snapshot(context.Background())
	assert.ErrorIs(t, err, errUnreachable)
	assert.Nil(t, catalog)
}
