package handler

import (
	"context"

	"backoffice/internal/core"
	"backoffice/internal/middleware"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewHealthHandler,
	NewViewHandler,
	NewCatalogHandler,
	NewEmployeeHandler,
	NewAssignmentHandler,
	NewPositionHandler,
)

// actorContext 把呼叫者身分帶進 service（稽核用）
func actorContext(c *gin.Context, ctx context.Context) context.Context {
	return service.WithActor(ctx, service.Actor{
		Username: c.GetString(core.ContextUsernameKey),
		Role:     middleware.CurrentRole(c),
	})
}
