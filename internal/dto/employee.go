package dto

import (
	"time"

	"backoffice/internal/organization"

	"github.com/shopspring/decimal"
)

// 工作地點參照
type WorkplaceDto struct {
	Kind string `json:"kind" binding:"omitempty,oneof=none supermarket warehouse"`
	ID   int64  `json:"id,omitempty" binding:"omitempty,min=1"`
}

func (d WorkplaceDto) ToDomain() (organization.Workplace, error) {
	kind, err := organization.ParseWorkplaceKind(d.Kind)
	if err != nil {
		return organization.NoWorkplace(), err
	}
	if kind == organization.WorkplaceNone {
		return organization.NoWorkplace(), nil
	}
	return organization.Workplace{Kind: kind, ID: d.ID}, nil
}

// 建立 / 修改員工；必填欄位由指派規則回報成欄位違規，這裡只檢查格式
type EmployeeInputDto struct {
	FirstName   string           `json:"firstName" binding:"max=100"`
	LastName    string           `json:"lastName" binding:"max=100"`
	PositionID  int64            `json:"positionId" binding:"omitempty,min=1"`
	Workplace   WorkplaceDto     `json:"workplace"`
	ManagerID   int64            `json:"managerId,omitempty" binding:"omitempty,min=1"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	WeeklyHours *int             `json:"weeklyHours,omitempty"`
	HireDate    *time.Time       `json:"hireDate,omitempty"`
	AddressID   int64            `json:"addressId,omitempty" binding:"omitempty,min=1"`
}

func (d *EmployeeInputDto) Messages() map[string]string {
	return map[string]string{
		"firstName.max":        "firstName must be at most 100 characters",
		"lastName.max":         "lastName must be at most 100 characters",
		"workplace.kind.oneof": "workplace.kind must be one of none, supermarket, warehouse",
		"workplace.id.min":     "workplace.id must be positive",
	}
}

func (d *EmployeeInputDto) ToDomain(id int64) (organization.Employee, error) {
	workplace, err := d.Workplace.ToDomain()
	if err != nil {
		return organization.Employee{}, err
	}
	e := organization.Employee{
		ID:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PositionID:  d.PositionID,
		Workplace:   workplace,
		ManagerID:   d.ManagerID,
		WeeklyHours: d.WeeklyHours,
		HireDate:    d.HireDate,
		AddressID:   d.AddressID,
	}
	if d.Salary != nil {
		e.Salary = decimal.NewNullDecimal(*d.Salary)
	}
	return e, nil
}

type EmployeeResponseDto struct {
	organization.Employee
	PositionName string `json:"positionName,omitempty"`
	// 職位屬於店長 / 倉庫主管
	IsManager   bool   `json:"isManager"`
	ManagerName string `json:"managerName,omitempty"`
}

type EmployeeListResponseDto struct {
	Total     int                    `json:"total"`
	Employees []*EmployeeResponseDto `json:"employees"`
}

type EmployeeHierarchyResponseDto struct {
	Employee *EmployeeResponseDto `json:"employee"`
	// 由直屬主管往上
	Managers     []*EmployeeResponseDto `json:"managers"`
	Subordinates []*EmployeeResponseDto `json:"subordinates"`
}

type AverageSalaryResponseDto struct {
	ManagerID int64            `json:"managerId"`
	Average   *decimal.Decimal `json:"average"`
	Counted   int              `json:"counted"`
}

// 薪資指數化；百分比以小數表示，例如 2.5 代表 2.5%
type SalaryIndexationDto struct {
	MinPercentage *decimal.Decimal `json:"minPercentage" binding:"required"`
	MaxPercentage *decimal.Decimal `json:"maxPercentage" binding:"required"`
}

func (d *SalaryIndexationDto) Messages() map[string]string {
	return map[string]string{
		"minPercentage.required": "minPercentage is required",
		"maxPercentage.required": "maxPercentage is required",
	}
}

type SalaryIndexationResponseDto struct {
	MinPercentage decimal.Decimal             `json:"minPercentage"`
	MaxPercentage decimal.Decimal             `json:"maxPercentage"`
	Updated       int64                       `json:"updated"`
	Changes       []organization.SalaryChange `json:"changes"`
}
