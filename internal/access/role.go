package access

import "strings"

// Role 呼叫者的權限等級，數值越大權限越高
type Role int

const (
	RolePublic Role = iota
	RoleUser
	RoleEmployee
	RoleAdmin
)

var roleNames = map[Role]string{
	RolePublic:   "public",
	RoleUser:     "user",
	RoleEmployee: "employee",
	RoleAdmin:    "admin",
}

// Roles 依權限由低到高排列
func Roles() []Role {
	return []Role{RolePublic, RoleUser, RoleEmployee, RoleAdmin}
}

// ParseRole 未知的角色一律視為 public（最低權限）
func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user":
		return RoleUser
	case "employee":
		return RoleEmployee
	case "admin":
		return RoleAdmin
	default:
		return RolePublic
	}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RolePublic]
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

// AtLeast actual 的等級是否大於等於 required
func AtLeast(actual, required Role) bool {
	return actual.level() >= required.level()
}

// 超出範圍的值一律當成 public
func (r Role) level() int {
	if r < RolePublic || r > RoleAdmin {
		return int(RolePublic)
	}
	return int(r)
}
