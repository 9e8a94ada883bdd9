package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogApplyChecksPayloadType(t *testing.T) {
	c := NewCatalog()

	assert.Error(t, c.Apply(CollectionPositions, []Workplace{}))
	assert.Error(t, c.Apply("stores", []Workplace{}))
	assert.False(t, c.Loaded(CollectionPositions))

	require.NoError(t, c.Apply(CollectionWarehouses, []Workplace{{ID: 1, Name: "North"}}))
	w, ok := c.ResolveWorkplace(Workplace{Kind: WorkplaceWarehouse, ID: 1})
	assert.True(t, ok)
	assert.Equal(t, Warehouse(1, "North"), w)
}

func TestCatalogReadyNeedsManagerPoolDependencies(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Apply(CollectionAddresses, []Address{}))
	require.NoError(t, c.Apply(CollectionEmployees, []Employee{}))
	require.NoError(t, c.Apply(CollectionPositions, []Position{}))
	require.NoError(t, c.Apply(CollectionSupermarkets, []Workplace{}))
	assert.False(t, c.Ready())

	require.NoError(t, c.Apply(CollectionWarehouses, []Workplace{}))
	assert.True(t, c.Ready())
	assert.Empty(t, c.Pending())
}

func TestCatalogEmployeesSortedAndNormalized(t *testing.T) {
	c := NewCatalog()
	c.SetEmployees([]Employee{{ID: 3}, {ID: 1, Workplace: Workplace{}}, {ID: 2}})

	got := c.Employees()
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, WorkplaceNone, got[0].Workplace.Kind)

	got[0].FirstName = "mutated"
	e, _ := c.Employee(1)
	assert.Empty(t, e.FirstName)
}

func TestWorkplaceEquality(t *testing.T) {
	assert.True(t, Supermarket(1, "a").Same(Supermarket(1, "b")))
	assert.False(t, Supermarket(1, "").Same(Warehouse(1, "")))
	assert.True(t, NoWorkplace().Same(Workplace{}))
	assert.False(t, NoWorkplace().Same(Supermarket(0, "")))
}
