package organization

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee 同時作為已儲存的員工與編輯中的草稿；ID = 0 代表尚未建立
type Employee struct {
	ID          int64               `json:"id"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	PositionID  int64               `json:"positionId,omitempty"`
	Workplace   Workplace           `json:"workplace"`
	ManagerID   int64               `json:"managerId,omitempty"`
	Salary      decimal.NullDecimal `json:"salary"`
	WeeklyHours *int                `json:"weeklyHours,omitempty"`
	HireDate    *time.Time          `json:"hireDate,omitempty"`
	AddressID   int64               `json:"addressId,omitempty"`
}

func (e Employee) HasManager() bool {
	return e.ManagerID != 0
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ManagerCandidate 員工加上解析後的工作地點（種類與名稱）
type ManagerCandidate struct {
	Employee
	Place Workplace `json:"place"`
}

type Address struct {
	ID     int64  `json:"id"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}
