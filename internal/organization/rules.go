package organization

import "strings"

const maxWeeklyHours = 168

// RequiredWorkplaceKind Store* → Supermarket，Warehouse* → Warehouse，其餘 → None
func RequiredWorkplaceKind(position Position) WorkplaceKind {
	switch position.Category {
	case CategoryStoreStaff, CategoryStoreManager:
		return WorkplaceSupermarket
	case CategoryWarehouseStaff, CategoryWarehouseManager:
		return WorkplaceWarehouse
	default:
		return WorkplaceNone
	}
}

// IsValidManager 候選人須與對象在同一個工作地點，且不能是自己
func IsValidManager(candidate ManagerCandidate, subjectWorkplace Workplace, subjectID int64) bool {
	if subjectWorkplace.IsNone() || candidate.Place.IsNone() {
		return false
	}
	if subjectID != 0 && candidate.ID == subjectID {
		return false
	}
	return candidate.Place.Same(subjectWorkplace)
}

// Validate 列出草稿所有違規；空集合代表可以送出
func Validate(draft Employee, catalog *Catalog) Violations {
	var vs Violations

	if strings.TrimSpace(draft.FirstName) == "" {
		vs.add(FieldFirstName, CodeRequired, "first name is required")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		vs.add(FieldLastName, CodeRequired, "last name is required")
	}

	required, positionKnown := validatePosition(&vs, draft, catalog)
	if positionKnown {
		validateWorkplace(&vs, draft.Workplace, required, catalog)
	}
	validateManager(&vs, draft, catalog)

	if draft.Salary.Valid && draft.Salary.Decimal.IsNegative() {
		vs.add(FieldSalary, CodeNegative, "salary cannot be negative")
	}
	if draft.WeeklyHours != nil && (*draft.WeeklyHours < 0 || *draft.WeeklyHours > maxWeeklyHours) {
		vs.add(FieldWeeklyHours, CodeOutOfRange, "weekly hours must be between 0 and %d", maxWeeklyHours)
	}
	if draft.AddressID != 0 {
		if !catalog.Loaded(CollectionAddresses) {
			vs.add(FieldAddress, CodeCatalogLoading, "addresses are still loading")
		} else if _, ok := catalog.Address(draft.AddressID); !ok {
			vs.add(FieldAddress, CodeNotFound, "address %d does not exist", draft.AddressID)
		}
	}
	return vs
}

func validatePosition(vs *Violations, draft Employee, catalog *Catalog) (WorkplaceKind, bool) {
	if draft.PositionID == 0 {
		vs.add(FieldPosition, CodeRequired, "position is required")
		return WorkplaceNone, false
	}
	if !catalog.Loaded(CollectionPositions) {
		vs.add(FieldPosition, CodeCatalogLoading, "positions are still loading")
		return WorkplaceNone, false
	}
	position, ok := catalog.Position(draft.PositionID)
	if !ok {
		vs.add(FieldPosition, CodeNotFound, "position %d does not exist", draft.PositionID)
		return WorkplaceNone, false
	}
	return RequiredWorkplaceKind(position), true
}

func validateWorkplace(vs *Violations, workplace Workplace, required WorkplaceKind, catalog *Catalog) {
	switch {
	case required == WorkplaceNone && !workplace.IsNone():
		vs.add(FieldWorkplace, CodeMustBeEmpty, "position does not allow a workplace")
	case required != WorkplaceNone && workplace.IsNone():
		vs.add(FieldWorkplace, CodeRequired, "position requires a %s", required)
	case required != WorkplaceNone && workplace.Kind != required:
		vs.add(FieldWorkplace, CodeKindMismatch, "position requires a %s, got %s", required, workplace.Kind)
	case !workplace.IsNone():
		if !catalog.Loaded(collectionFor(workplace.Kind)) {
			vs.add(FieldWorkplace, CodeCatalogLoading, "%ss are still loading", workplace.Kind)
		} else if _, ok := catalog.ResolveWorkplace(workplace); !ok {
			vs.add(FieldWorkplace, CodeNotFound, "%s does not exist", workplace)
		}
	}
}

func validateManager(vs *Violations, draft Employee, catalog *Catalog) {
	if !draft.HasManager() {
		return
	}
	if draft.ID != 0 && draft.ManagerID == draft.ID {
		vs.add(FieldManager, CodeSelfManagement, "an employee cannot manage themselves")
		return
	}
	if draft.Workplace.IsNone() {
		vs.add(FieldManager, CodeMustBeEmpty, "a manager requires a workplace")
		return
	}
	if !catalog.Ready() {
		vs.add(FieldManager, CodeCatalogLoading, "manager pool is still loading")
		return
	}
	manager, ok := catalog.Employee(draft.ManagerID)
	if !ok {
		vs.add(FieldManager, CodeNotFound, "manager %d does not exist", draft.ManagerID)
		return
	}
	if !IsValidManager(catalog.candidate(manager), draft.Workplace, draft.ID) {
		vs.add(FieldManager, CodeWorkplaceMismatch, "manager %d does not work at %s", draft.ManagerID, draft.Workplace)
	}
}

func collectionFor(kind WorkplaceKind) CollectionKind {
	if kind == WorkplaceWarehouse {
		return CollectionWarehouses
	}
	return CollectionSupermarkets
}
