package organization

import (
	"fmt"
	"sort"
)

// CollectionKind 目錄中可獨立載入的資料集合
type CollectionKind string

const (
	CollectionPositions    CollectionKind = "positions"
	CollectionSupermarkets CollectionKind = "supermarkets"
	CollectionWarehouses   CollectionKind = "warehouses"
	CollectionEmployees    CollectionKind = "employees"
	CollectionAddresses    CollectionKind = "addresses"
)

// Collections 編輯開始時需要抓取的全部集合
func Collections() []CollectionKind {
	return []CollectionKind{
		CollectionPositions,
		CollectionSupermarkets,
		CollectionWarehouses,
		CollectionEmployees,
		CollectionAddresses,
	}
}

// 主管候選名單依賴的四個集合
var managerPoolDependencies = []CollectionKind{
	CollectionEmployees,
	CollectionSupermarkets,
	CollectionWarehouses,
	CollectionPositions,
}

// Catalog 參考資料快照。非併發安全，由持有者負責序列化存取
type Catalog struct {
	positions    map[int64]Position
	supermarkets map[int64]Workplace
	warehouses   map[int64]Workplace
	addresses    map[int64]Address
	employees    []Employee
	employeeIdx  map[int64]int
	loaded       map[CollectionKind]bool
}

func NewCatalog() *Catalog {
	return &Catalog{
		positions:    map[int64]Position{},
		supermarkets: map[int64]Workplace{},
		warehouses:   map[int64]Workplace{},
		addresses:    map[int64]Address{},
		employeeIdx:  map[int64]int{},
		loaded:       map[CollectionKind]bool{},
	}
}

func (c *Catalog) SetPositions(positions []Position) {
	c.positions = make(map[int64]Position, len(positions))
	for _, p := range positions {
		c.positions[p.ID] = NewPosition(p.ID, p.Name, p.Category)
	}
	c.loaded[CollectionPositions] = true
}

func (c *Catalog) SetSupermarkets(supermarkets []Workplace) {
	c.supermarkets = make(map[int64]Workplace, len(supermarkets))
	for _, s := range supermarkets {
		c.supermarkets[s.ID] = Supermarket(s.ID, s.Name)
	}
	c.loaded[CollectionSupermarkets] = true
}

func (c *Catalog) SetWarehouses(warehouses []Workplace) {
	c.warehouses = make(map[int64]Workplace, len(warehouses))
	for _, w := range warehouses {
		c.warehouses[w.ID] = Warehouse(w.ID, w.Name)
	}
	c.loaded[CollectionWarehouses] = true
}

func (c *Catalog) SetAddresses(addresses []Address) {
	c.addresses = make(map[int64]Address, len(addresses))
	for _, a := range addresses {
		c.addresses[a.ID] = a
	}
	c.loaded[CollectionAddresses] = true
}

// SetEmployees 依 id 由小到大保存
func (c *Catalog) SetEmployees(employees []Employee) {
	sorted := make([]Employee, len(employees))
	copy(sorted, employees)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c.employees = sorted
	c.employeeIdx = make(map[int64]int, len(sorted))
	for i, e := range sorted {
		c.employees[i].Workplace = e.Workplace.normalized()
		c.employeeIdx[e.ID] = i
	}
	c.loaded[CollectionEmployees] = true
}

// Apply 依集合種類套用一次資料到達事件
func (c *Catalog) Apply(kind CollectionKind, data any) error {
	switch kind {
	case CollectionPositions:
		v, ok := data.([]Position)
		if !ok {
			return fmt.Errorf("catalog: %s expects []Position, got %T", kind, data)
		}
		c.SetPositions(v)
	case CollectionSupermarkets:
		v, ok := data.([]Workplace)
		if !ok {
			return fmt.Errorf("catalog: %s expects []Workplace, got %T", kind, data)
		}
		c.SetSupermarkets(v)
	case CollectionWarehouses:
		v, ok := data.([]Workplace)
		if !ok {
			return fmt.Errorf("catalog: %s expects []Workplace, got %T", kind, data)
		}
		c.SetWarehouses(v)
	case CollectionEmployees:
		v, ok := data.([]Employee)
		if !ok {
			return fmt.Errorf("catalog: %s expects []Employee, got %T", kind, data)
		}
		c.SetEmployees(v)
	case CollectionAddresses:
		v, ok := data.([]Address)
		if !ok {
			return fmt.Errorf("catalog: %s expects []Address, got %T", kind, data)
		}
		c.SetAddresses(v)
	default:
		return fmt.Errorf("catalog: unknown collection %q", kind)
	}
	return nil
}

func (c *Catalog) Loaded(kind CollectionKind) bool {
	return c.loaded[kind]
}

// Ready 主管候選名單的四個依賴是否都至少載入過一次
func (c *Catalog) Ready() bool {
	for _, kind := range managerPoolDependencies {
		if !c.loaded[kind] {
			return false
		}
	}
	return true
}

// Pending 尚未載入的集合
func (c *Catalog) Pending() []CollectionKind {
	var pending []CollectionKind
	for _, kind := range Collections() {
		if !c.loaded[kind] {
			pending = append(pending, kind)
		}
	}
	return pending
}

func (c *Catalog) Position(id int64) (Position, bool) {
	p, ok := c.positions[id]
	return p, ok
}

func (c *Catalog) Employee(id int64) (Employee, bool) {
	i, ok := c.employeeIdx[id]
	if !ok {
		return Employee{}, false
	}
	return c.employees[i], true
}

func (c *Catalog) Address(id int64) (Address, bool) {
	a, ok := c.addresses[id]
	return a, ok
}

// ResolveWorkplace 補上名稱；參照不存在時回傳 false
func (c *Catalog) ResolveWorkplace(w Workplace) (Workplace, bool) {
	switch w.Kind {
	case WorkplaceSupermarket:
		s, ok := c.supermarkets[w.ID]
		return s, ok
	case WorkplaceWarehouse:
		wh, ok := c.warehouses[w.ID]
		return wh, ok
	default:
		return NoWorkplace(), true
	}
}

func (c *Catalog) Positions() []Position {
	out := make([]Position, 0, len(c.positions))
	for _, p := range c.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Workplaces 指定種類的所有工作地點（依 id 排序）
func (c *Catalog) Workplaces(kind WorkplaceKind) []Workplace {
	var source map[int64]Workplace
	switch kind {
	case WorkplaceSupermarket:
		source = c.supermarkets
	case WorkplaceWarehouse:
		source = c.warehouses
	default:
		return []Workplace{}
	}
	out := make([]Workplace, 0, len(source))
	for _, w := range source {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Addresses() []Address {
	out := make([]Address, 0, len(c.addresses))
	for _, a := range c.addresses {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Employees() []Employee {
	out := make([]Employee, len(c.employees))
	copy(out, c.employees)
	return out
}
