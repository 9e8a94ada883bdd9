package access

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardNeverBuildsViewWhenDenied(t *testing.T) {
	called := false
	view := func(current Role) Result {
		called = true
		return Result{Kind: ResultView, View: "Secret", Role: current}
	}

	result := Guard(RoleAdmin, RoleEmployee, view)

	assert.False(t, called)
	assert.Equal(t, ResultDenied, result.Kind)
	assert.Equal(t, "Permissions Denied", result.Message)
	assert.Equal(t, http.StatusForbidden, result.StatusCode())
}

func TestGuardPassesCurrentRoleToView(t *testing.T) {
	result := Guard(RoleUser, RoleAdmin, Page("CartPage"))

	assert.Equal(t, ResultView, result.Kind)
	assert.Equal(t, "CartPage", result.View)
	assert.Equal(t, RoleAdmin, result.Role)
	assert.Equal(t, http.StatusOK, result.StatusCode())
}

func TestDefaultRouteTable(t *testing.T) {
	table := DefaultRouteTable()

	cases := []struct {
		path string
		role Role
		kind ResultKind
		view string
	}{
		{"/", RolePublic, ResultView, "MainPage"},
		{"/login", RolePublic, ResultView, "LoginForm"},
		{"/user/cart", RolePublic, ResultDenied, ""},
		{"/user/cart", RoleUser, ResultView, "CartPage"},
		{"/employee/manage-orders", RoleUser, ResultDenied, ""},
		{"/employee/manage-orders", RoleAdmin, ResultView, "ManageOrdersPage"},
		{"/admin/admin-panel", RoleEmployee, ResultDenied, ""},
		{"/admin/admin-panel/", RoleAdmin, ResultView, "AdminPanelPage"},
		{"admin", RoleAdmin, ResultView, "MainPage"},
		{"/does-not-exist", RoleAdmin, ResultNotFound, ""},
	}
	for _, tc := range cases {
		result := table.Resolve(tc.path, tc.role)
		assert.Equal(t, tc.kind, result.Kind, "%s as %s", tc.path, tc.role)
		assert.Equal(t, tc.view, result.View, "%s as %s", tc.path, tc.role)
		assert.Equal(t, tc.role, result.Role)
	}
}

func TestRouteTableKeepsRegistrationOrder(t *testing.T) {
	table := NewRouteTable().
		Handle("/b", RoleUser, Page("B")).
		Handle("/a", RolePublic, Page("A")).
		Handle("/b", RoleAdmin, Page("B2"))

	routes := table.Routes()
	if assert.Len(t, routes, 2) {
		assert.Equal(t, "/b", routes[0].Path)
		assert.Equal(t, RoleAdmin, routes[0].Required)
		assert.Equal(t, "/a", routes[1].Path)
	}
	assert.Equal(t, http.StatusNotFound, table.Resolve("/c", RoleAdmin).StatusCode())
}
