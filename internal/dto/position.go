package dto

import (
	"strings"

	"backoffice/internal/organization"
)

// 建立 / 修改職位；category 省略時依職稱推斷
type PositionInputDto struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category,omitempty" binding:"omitempty,oneof=store_staff store_manager warehouse_staff warehouse_manager other"`
}

func (d *PositionInputDto) Messages() map[string]string {
	return map[string]string{
		"name.required":  "name is required",
		"name.max":       "name must be at most 100 characters",
		"category.oneof": "category must be one of store_staff, store_manager, warehouse_staff, warehouse_manager, other",
	}
}

func (d *PositionInputDto) ToDomain(id int64) organization.Position {
	return organization.NewPosition(id, strings.TrimSpace(d.Name), organization.Category(d.Category))
}

type PositionResponseDto struct {
	organization.Position
	// 目前擔任此職位的員工數
	Holders int `json:"holders"`
}
