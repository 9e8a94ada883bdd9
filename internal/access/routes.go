package access

import "strings"

type Route struct {
	Path     string `json:"path"`
	Required Role   `json:"required"`
	view     View
}

// RouteTable 路徑 → 所需角色與頁面
type RouteTable struct {
	routes map[string]Route
	order  []string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{routes: make(map[string]Route)}
}

// Handle 重複註冊同一路徑時以後者為準
func (t *RouteTable) Handle(path string, required Role, view View) *RouteTable {
	path = normalizePath(path)
	if _, exists := t.routes[path]; !exists {
		t.order = append(t.order, path)
	}
	t.routes[path] = Route{Path: path, Required: required, view: view}
	return t
}

// Resolve 找不到路徑時不論角色都回傳 NotFound
func (t *RouteTable) Resolve(path string, current Role) Result {
	route, ok := t.routes[normalizePath(path)]
	if !ok {
		notFound := NotFound
		notFound.Role = current
		return notFound
	}
	return Guard(route.Required, current, route.view)
}

func (t *RouteTable) Routes() []Route {
	routes := make([]Route, 0, len(t.order))
	for _, p := range t.order {
		routes = append(routes, t.routes[p])
	}
	return routes
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(path, "/")
}

// DefaultRouteTable 後台所有頁面的權限設定
func DefaultRouteTable() *RouteTable {
	t := NewRouteTable()
	t.Handle("/", RolePublic, Page("MainPage"))
	t.Handle("/login", RolePublic, Page("LoginForm"))
	t.Handle("/registration", RolePublic, Page("RegistrationForm"))

	t.Handle("/user", RoleUser, Page("MainPage"))
	t.Handle("/employee", RoleEmployee, Page("MainPage"))
	t.Handle("/admin", RoleAdmin, Page("MainPage"))

	// 購物車與訂單：每個角色各自一條路徑
	for _, role := range []Role{RoleUser, RoleEmployee, RoleAdmin} {
		prefix := "/" + role.String()
		t.Handle(prefix+"/cart", role, Page("CartPage"))
		t.Handle(prefix+"/orders", role, Page("OrdersPage"))
	}
	for _, role := range []Role{RoleEmployee, RoleAdmin} {
		prefix := "/" + role.String()
		t.Handle(prefix+"/manage-orders", role, Page("ManageOrdersPage"))
		t.Handle(prefix+"/order-supplier", role, Page("OrderSupplierPage"))
		t.Handle(prefix+"/employee-info", role, Page("EmployeeInfoPage"))
	}
	t.Handle("/admin/admin-panel", RoleAdmin, Page("AdminPanelPage"))
	return t
}
