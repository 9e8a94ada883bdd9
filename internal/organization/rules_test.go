package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferCategory(t *testing.T) {
	cases := map[string]Category{
		"Store Staff":         CategoryStoreStaff,
		"store stuff":         CategoryStoreStaff,
		"Store  Manager":      CategoryStoreManager,
		"Warehouse Stuff":     CategoryWarehouseStaff,
		" warehouse manager ": CategoryWarehouseManager,
		"Accountant":          CategoryOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, InferCategory(name), name)
	}
	assert.Equal(t, CategoryStoreStaff, NewPosition(1, "Cashier", CategoryStoreStaff).Category)
	assert.Equal(t, CategoryOther, NewPosition(1, "Cashier", "bogus").Category)
}

func TestRequiredWorkplaceKind(t *testing.T) {
	assert.Equal(t, WorkplaceSupermarket, RequiredWorkplaceKind(Position{Category: CategoryStoreStaff}))
	assert.Equal(t, WorkplaceSupermarket, RequiredWorkplaceKind(Position{Category: CategoryStoreManager}))
	assert.Equal(t, WorkplaceWarehouse, RequiredWorkplaceKind(Position{Category: CategoryWarehouseStaff}))
	assert.Equal(t, WorkplaceWarehouse, RequiredWorkplaceKind(Position{Category: CategoryWarehouseManager}))
	assert.Equal(t, WorkplaceNone, RequiredWorkplaceKind(Position{Category: CategoryOther}))
}

func TestIsValidManager(t *testing.T) {
	manager := ManagerCandidate{Employee: Employee{ID: 10}, Place: Supermarket(1, "Centrum")}

	assert.True(t, IsValidManager(manager, Supermarket(1, ""), 11))
	assert.True(t, IsValidManager(manager, Supermarket(1, ""), 0))
	assert.False(t, IsValidManager(manager, Supermarket(1, ""), 10), "self")
	assert.False(t, IsValidManager(manager, Supermarket(2, ""), 11), "other store")
	assert.False(t, IsValidManager(manager, Warehouse(1, ""), 11), "same id, other kind")
	assert.False(t, IsValidManager(manager, NoWorkplace(), 11))
	assert.False(t, IsValidManager(ManagerCandidate{Employee: Employee{ID: 30}, Place: NoWorkplace()}, Supermarket(1, ""), 11))
}

func TestValidateStoredEmployeesAreValid(t *testing.T) {
	c := loadedCatalog()
	for _, e := range c.Employees() {
		assert.Empty(t, Validate(e, c), "employee %d", e.ID)
	}
}

func TestValidateWorkplaceMatchesCategory(t *testing.T) {
	c := loadedCatalog()

	staffInWarehouse := Employee{FirstName: "A", LastName: "B", PositionID: posStoreStaff, Workplace: Warehouse(1, "")}
	assert.Equal(t, []string{CodeKindMismatch}, Validate(staffInWarehouse, c).Codes(FieldWorkplace))

	warehouseWithoutPlace := Employee{FirstName: "A", LastName: "B", PositionID: posWarehouseStaff, Workplace: NoWorkplace()}
	assert.Equal(t, []string{CodeRequired}, Validate(warehouseWithoutPlace, c).Codes(FieldWorkplace))

	otherWithPlace := Employee{FirstName: "A", LastName: "B", PositionID: posAccountant, Workplace: Supermarket(1, "")}
	assert.Equal(t, []string{CodeMustBeEmpty}, Validate(otherWithPlace, c).Codes(FieldWorkplace))

	unknownStore := Employee{FirstName: "A", LastName: "B", PositionID: posStoreStaff, Workplace: Supermarket(99, "")}
	assert.Equal(t, []string{CodeNotFound}, Validate(unknownStore, c).Codes(FieldWorkplace))
}

func TestValidateManager(t *testing.T) {
	c := loadedCatalog()
	base := Employee{ID: 11, FirstName: "Petr", LastName: "Svoboda", PositionID: posStoreStaff, Workplace: Supermarket(1, "")}

	self := base
	self.ManagerID = 11
	assert.Equal(t, []string{CodeSelfManagement}, Validate(self, c).Codes(FieldManager))

	elsewhere := base
	elsewhere.ManagerID = 13
	assert.Equal(t, []string{CodeWorkplaceMismatch}, Validate(elsewhere, c).Codes(FieldManager))

	missing := base
	missing.ManagerID = 999
	assert.Equal(t, []string{CodeNotFound}, Validate(missing, c).Codes(FieldManager))

	noPlace := Employee{FirstName: "A", LastName: "B", PositionID: posAccountant, Workplace: NoWorkplace(), ManagerID: 10}
	assert.Equal(t, []string{CodeMustBeEmpty}, Validate(noPlace, c).Codes(FieldManager))
}

func TestValidateScalarFields(t *testing.T) {
	c := loadedCatalog()
	hours := 169
	draft := Employee{
		FirstName:   " ",
		PositionID:  posAccountant,
		Workplace:   NoWorkplace(),
		Salary:      salary("-1"),
		WeeklyHours: &hours,
		AddressID:   7,
	}

	vs := Validate(draft, c)
	require.False(t, vs.Empty())
	assert.True(t, vs.Has(FieldFirstName))
	assert.True(t, vs.Has(FieldLastName))
	assert.Equal(t, []string{CodeNegative}, vs.Codes(FieldSalary))
	assert.Equal(t, []string{CodeOutOfRange}, vs.Codes(FieldWeeklyHours))
	assert.Equal(t, []string{CodeNotFound}, vs.Codes(FieldAddress))
	assert.False(t, vs.Has(FieldWorkplace))
}

func TestValidateReportsLoadingCollections(t *testing.T) {
	c := NewCatalog()
	draft := Employee{FirstName: "A", LastName: "B", PositionID: posStoreStaff, Workplace: Supermarket(1, ""), ManagerID: 10}

	vs := Validate(draft, c)
	assert.Equal(t, []string{CodeCatalogLoading}, vs.Codes(FieldPosition))
	assert.Equal(t, []string{CodeCatalogLoading}, vs.Codes(FieldManager))

	var ve error = &ValidationError{Violations: vs}
	assert.Contains(t, ve.Error(), "positions are still loading")
}
