package organization

import "fmt"

// WorkplaceKind 員工所屬工作地點的種類
type WorkplaceKind string

const (
	WorkplaceNone        WorkplaceKind = "none"
	WorkplaceSupermarket WorkplaceKind = "supermarket"
	WorkplaceWarehouse   WorkplaceKind = "warehouse"
)

func ParseWorkplaceKind(s string) (WorkplaceKind, error) {
	switch WorkplaceKind(s) {
	case WorkplaceNone, "":
		return WorkplaceNone, nil
	case WorkplaceSupermarket:
		return WorkplaceSupermarket, nil
	case WorkplaceWarehouse:
		return WorkplaceWarehouse, nil
	default:
		return WorkplaceNone, fmt.Errorf("unknown workplace kind %q", s)
	}
}

// Workplace Supermarket{id,name} | Warehouse{id,name} | None
type Workplace struct {
	Kind WorkplaceKind `json:"kind" bson:"kind"`
	ID   int64         `json:"id,omitempty" bson:"id,omitempty"`
	Name string        `json:"name,omitempty" bson:"-"`
}

func NoWorkplace() Workplace {
	return Workplace{Kind: WorkplaceNone}
}

func Supermarket(id int64, name string) Workplace {
	return Workplace{Kind: WorkplaceSupermarket, ID: id, Name: name}
}

func Warehouse(id int64, name string) Workplace {
	return Workplace{Kind: WorkplaceWarehouse, ID: id, Name: name}
}

func (w Workplace) IsNone() bool {
	return w.Kind == "" || w.Kind == WorkplaceNone
}

// Same 只比較種類與 id，名稱僅供顯示
func (w Workplace) Same(other Workplace) bool {
	if w.IsNone() || other.IsNone() {
		return w.IsNone() && other.IsNone()
	}
	return w.Kind == other.Kind && w.ID == other.ID
}

func (w Workplace) normalized() Workplace {
	if w.IsNone() {
		return NoWorkplace()
	}
	return w
}

func (w Workplace) String() string {
	if w.IsNone() {
		return string(WorkplaceNone)
	}
	return fmt.Sprintf("%s#%d", w.Kind, w.ID)
}
