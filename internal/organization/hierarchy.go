package organization

import "github.com/shopspring/decimal"

// ManagerChain 由直屬主管往上到最高層；遇到循環即停止
func (c *Catalog) ManagerChain(employeeID int64) ([]Employee, error) {
	current, ok := c.Employee(employeeID)
	if !ok {
		return nil, ErrNotFound
	}
	chain := []Employee{}
	visited := map[int64]bool{current.ID: true}
	for current.HasManager() {
		manager, ok := c.Employee(current.ManagerID)
		if !ok || visited[manager.ID] {
			break
		}
		visited[manager.ID] = true
		chain = append(chain, manager)
		current = manager
	}
	return chain, nil
}

// Subordinates 直屬下屬
func (c *Catalog) Subordinates(managerID int64) []Employee {
	var out []Employee
	for _, e := range c.employees {
		if e.ManagerID == managerID && e.ID != managerID {
			out = append(out, e)
		}
	}
	return out
}

// AverageSubordinateSalary 只計算有填薪資的直屬下屬；沒有資料時 ok = false
func (c *Catalog) AverageSubordinateSalary(managerID int64) (average decimal.Decimal, ok bool, err error) {
	if _, exists := c.Employee(managerID); !exists {
		return decimal.Zero, false, ErrNotFound
	}
	var salaries []decimal.Decimal
	for _, e := range c.Subordinates(managerID) {
		if e.Salary.Valid {
			salaries = append(salaries, e.Salary.Decimal)
		}
	}
	if len(salaries) == 0 {
		return decimal.Zero, false, nil
	}
	return decimal.Avg(salaries[0], salaries[1:]...).Round(2), true, nil
}
