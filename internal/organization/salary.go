package organization

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalaryChange 單一員工的調薪結果
type SalaryChange struct {
	EmployeeID int64           `json:"employeeId"`
	Percent    decimal.Decimal `json:"percent"`
	Before     decimal.Decimal `json:"before"`
	After      decimal.Decimal `json:"after"`
}

// IndexSalaries 調幅依薪資高低線性分配：最低薪資拿 maxPercent，最高薪資拿 minPercent。
// 所有人薪資相同時一律 maxPercent；沒有薪資的員工略過。新薪資四捨五入到小數兩位，依員工 id 排序
func IndexSalaries(employees []Employee, minPercent, maxPercent decimal.Decimal) ([]SalaryChange, error) {
	var vs Violations
	switch {
	case minPercent.IsNegative():
		vs.add(FieldSalary, CodeNegative, "minPercentage must not be negative")
	case maxPercent.GreaterThan(hundred):
		vs.add(FieldSalary, CodeOutOfRange, "maxPercentage must be at most 100")
	case minPercent.GreaterThan(maxPercent):
		vs.add(FieldSalary, CodeOutOfRange, "minPercentage %s is greater than maxPercentage %s", minPercent, maxPercent)
	}
	if !vs.Empty() {
		return nil, &ValidationError{Violations: vs}
	}

	var salaried []Employee
	for _, e := range employees {
		if e.Salary.Valid {
			salaried = append(salaried, e)
		}
	}
	changes := make([]SalaryChange, 0, len(salaried))
	if len(salaried) == 0 {
		return changes, nil
	}
	sort.Slice(salaried, func(i, j int) bool { return salaried[i].ID < salaried[j].ID })

	lowest, highest := salaried[0].Salary.Decimal, salaried[0].Salary.Decimal
	for _, e := range salaried[1:] {
		lowest = decimal.Min(lowest, e.Salary.Decimal)
		highest = decimal.Max(highest, e.Salary.Decimal)
	}
	spread := highest.Sub(lowest)
	band := maxPercent.Sub(minPercent)

	for _, e := range salaried {
		before := e.Salary.Decimal
		percent := maxPercent
		if spread.IsPositive() {
			percent = maxPercent.Sub(band.Mul(before.Sub(lowest)).Div(spread)).Round(4)
		}
		changes = append(changes, SalaryChange{
			EmployeeID: e.ID,
			Percent:    percent,
			Before:     before,
			After:      before.Mul(hundred.Add(percent)).Div(hundred).Round(2),
		})
	}
	return changes, nil
}
