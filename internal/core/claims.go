package core

import "github.com/golang-jwt/jwt/v4"

// Claims 外部簽發的 Bearer token 內容；Role 為小寫角色名稱
type Claims struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// gin context keys
const (
	ContextRoleKey     = "role"
	ContextUsernameKey = "username"
)
