package dto

import (
	"time"

	"backoffice/internal/organization"

	"github.com/shopspring/decimal"
)

// 開啟編輯工作階段；EmployeeID = 0 代表新增員工
type OpenAssignmentDto struct {
	EmployeeID int64 `json:"employeeId,omitempty" binding:"omitempty,min=1"`
	// 等待參考資料載入完成再回應
	Wait bool `json:"wait,omitempty"`
}

type ChangePositionDto struct {
	PositionID int64 `json:"positionId" binding:"omitempty,min=1"`
}

type ChangeWorkplaceDto struct {
	WorkplaceDto
}

type ChangeManagerDto struct {
	// 0 代表清除
	ManagerID int64 `json:"managerId" binding:"min=0"`
}

// 欄位為 nil 代表不變；要清空選填欄位時列在 Clear
type ChangeDetailsDto struct {
	FirstName   *string          `json:"firstName,omitempty" binding:"omitempty,max=100"`
	LastName    *string          `json:"lastName,omitempty" binding:"omitempty,max=100"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	WeeklyHours *int             `json:"weeklyHours,omitempty"`
	HireDate    *time.Time       `json:"hireDate,omitempty"`
	AddressID   *int64           `json:"addressId,omitempty" binding:"omitempty,min=1"`
	Clear       []string         `json:"clear,omitempty" binding:"omitempty,dive,oneof=salary weeklyHours hireDate addressId"`
}

func (d *ChangeDetailsDto) Messages() map[string]string {
	return map[string]string{
		"clear.oneof": "clear accepts salary, weeklyHours, hireDate, addressId",
	}
}

func (d *ChangeDetailsDto) ToPatch() organization.DetailsPatch {
	patch := organization.DetailsPatch{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		AddressID: d.AddressID,
	}
	if d.Salary != nil {
		salary := decimal.NewNullDecimal(*d.Salary)
		patch.Salary = &salary
	}
	if d.WeeklyHours != nil {
		patch.WeeklyHours = &d.WeeklyHours
	}
	if d.HireDate != nil {
		patch.HireDate = &d.HireDate
	}
	for _, field := range d.Clear {
		switch field {
		case "salary":
			patch.Salary = &decimal.NullDecimal{}
		case "weeklyHours":
			var none *int
			patch.WeeklyHours = &none
		case "hireDate":
			var none *time.Time
			patch.HireDate = &none
		case "addressId":
			var none int64
			patch.AddressID = &none
		}
	}
	return patch
}

type AssignmentSessionResponseDto struct {
	SessionID string                `json:"sessionId"`
	Form      organization.FormView `json:"form"`
}
