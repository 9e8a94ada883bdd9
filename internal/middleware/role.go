package middleware

import (
	"fmt"
	"strings"

	"backoffice/config"
	"backoffice/internal/access"
	"backoffice/internal/core"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/pkg/response"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Role 由 Bearer token 取得呼叫者角色，並依路由群組要求的最低角色放行
type Role struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	metric *telemetry.Metric
	secret []byte
}

func NewRole(logger *zap.Logger, trace *telemetry.Trace, metric *telemetry.Metric, config *config.Configuration) *Role {
	return &Role{logger: logger, trace: trace, metric: metric, secret: []byte(config.App.SecretKey)}
}

// Resolver 沒有 token 時為 public；token 無效時回 401
func (m *Role) Resolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanRoleMiddleware))
		meta := core.TraceRoleMeta{Role: access.RolePublic.String(), Allowed: true}

		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			meta.Status = "anonymous"
			m.trace.ApplyTraceAttributes(span, meta)
			c.Set(core.ContextRoleKey, access.RolePublic)
			end(nil)
			c.Next()
			return
		}

		claims, err := m.parse(raw)
		if err != nil {
			meta.Status, meta.Allowed = "invalid_token", false
			m.trace.ApplyTraceAttributes(span, meta)
			m.logger.Warn("rejected bearer token",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			cause := cErr.InvalidSession("invalid bearer token")
			response.AbortWithError(c, cause)
			end(err)
			return
		}

		role := access.ParseRole(claims.Role)
		meta.Username, meta.Role, meta.Status = claims.Username, role.String(), "resolved"
		m.trace.ApplyTraceAttributes(span, meta)
		c.Set(core.ContextRoleKey, role)
		c.Set(core.ContextUsernameKey, claims.Username)
		end(nil)
		c.Next()
	}
}

// Require 角色不足時以 403 中止，handler 不會執行
func (m *Role) Require(required access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanRoleMiddleware))
		current := CurrentRole(c)
		meta := core.TraceRoleMeta{
			Username: c.GetString(core.ContextUsernameKey),
			Role:     current.String(),
			Required: required.String(),
			Allowed:  access.AtLeast(current, required),
		}
		m.trace.ApplyTraceAttributes(span, meta)

		if !meta.Allowed {
			telemetry.Inc(m.metric.AccessDeniedTotal, current.String())
			cause := cErr.PermissionDenied(fmt.Sprintf("requires %s, caller is %s", required, current))
			response.AbortWithError(c, cause)
			end(cause)
			return
		}
		end(nil)
		c.Next()
	}
}

func (m *Role) parse(raw string) (*core.Claims, error) {
	claims := &core.Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// CurrentRole Resolver 沒執行過時視為 public
func CurrentRole(c *gin.Context) access.Role {
	if v, ok := c.Get(core.ContextRoleKey); ok {
		if role, ok := v.(access.Role); ok {
			return role
		}
	}
	return access.RolePublic
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
