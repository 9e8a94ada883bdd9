package organization

import "github.com/shopspring/decimal"

const (
	posStoreStaff       int64 = 1
	posStoreManager     int64 = 2
	posWarehouseStaff   int64 = 3
	posWarehouseManager int64 = 4
	posAccountant       int64 = 5
	posCashier          int64 = 6
)

// loadedCatalog 兩家超市、一個倉庫、六位員工
func loadedCatalog() *Catalog {
	c := NewCatalog()
	c.SetPositions([]Position{
		{ID: posStoreStaff, Name: "Store Staff"},
		{ID: posStoreManager, Name: "Store Manager"},
		{ID: posWarehouseStaff, Name: "Warehouse Stuff"},
		{ID: posWarehouseManager, Name: "Warehouse Manager", Category: CategoryWarehouseManager},
		{ID: posAccountant, Name: "Accountant"},
		{ID: posCashier, Name: "Cashier", Category: CategoryStoreStaff},
	})
	c.SetSupermarkets([]Workplace{Supermarket(1, "Centrum"), Supermarket(2, "Dukla")})
	c.SetWarehouses([]Workplace{Warehouse(1, "North")})
	c.SetAddresses([]Address{{ID: 1, Street: "Studentská 95", City: "Pardubice", Zip: "53210"}})
	c.SetEmployees([]Employee{
		{ID: 10, FirstName: "Jana", LastName: "Novak", PositionID: posStoreManager, Workplace: Supermarket(1, ""), Salary: salary("42000")},
		{ID: 11, FirstName: "Petr", LastName: "Svoboda", PositionID: posStoreStaff, Workplace: Supermarket(1, ""), ManagerID: 10, Salary: salary("28000")},
		{ID: 12, FirstName: "Eva", LastName: "Dvorak", PositionID: posStoreStaff, Workplace: Supermarket(1, ""), ManagerID: 10, Salary: salary("27001")},
		{ID: 13, FirstName: "Karel", LastName: "Horak", PositionID: posStoreStaff, Workplace: Supermarket(2, "")},
		{ID: 20, FirstName: "Tomas", LastName: "Cerny", PositionID: posWarehouseManager, Workplace: Warehouse(1, "")},
		{ID: 30, FirstName: "Marek", LastName: "Kucera", PositionID: posAccountant, Workplace: NoWorkplace()},
	})
	return c
}

func salary(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func ids(candidates []ManagerCandidate) []int64 {
	out := make([]int64, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}
