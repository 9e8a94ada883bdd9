package organization

import "strings"

// Category 職位分類，決定員工必須隸屬的工作地點種類
type Category string

const (
	CategoryStoreStaff       Category = "store_staff"
	CategoryStoreManager     Category = "store_manager"
	CategoryWarehouseStaff   Category = "warehouse_staff"
	CategoryWarehouseManager Category = "warehouse_manager"
	CategoryOther            Category = "other"
)

type Position struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

func (c Category) IsManager() bool {
	return c == CategoryStoreManager || c == CategoryWarehouseManager
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStoreStaff, CategoryStoreManager, CategoryWarehouseStaff, CategoryWarehouseManager, CategoryOther:
		return true
	}
	return false
}

// InferCategory 舊資料沒有分類時依職稱推斷（"Stuff" 是舊資料裡的拼法）
func InferCategory(name string) Category {
	n := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	switch n {
	case "store staff", "store stuff":
		return CategoryStoreStaff
	case "store manager":
		return CategoryStoreManager
	case "warehouse staff", "warehouse stuff":
		return CategoryWarehouseStaff
	case "warehouse manager":
		return CategoryWarehouseManager
	default:
		return CategoryOther
	}
}

// NewPosition 分類無效時以職稱推斷
func NewPosition(id int64, name string, category Category) Position {
	if !category.Valid() {
		category = InferCategory(name)
	}
	return Position{ID: id, Name: name, Category: category}
}
