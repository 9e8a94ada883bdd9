package router

import (
	"backoffice/internal/access"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// PositionRouter 職位維護只開放 admin；讀取走 /catalog/positions
type PositionRouter struct {
	positionHandler *handler.PositionHandler
	roleMiddleware  *middleware.Role
}

func NewPositionRouter(positionHandler *handler.PositionHandler, roleMiddleware *middleware.Role) *PositionRouter {
	return &PositionRouter{positionHandler: positionHandler, roleMiddleware: roleMiddleware}
}

func (pr *PositionRouter) RegisterRoutes(api *gin.RouterGroup) {
	positions := api.Group("/positions")
	positions.Use(pr.roleMiddleware.Require(access.RoleAdmin))
	{
		positions.POST("", pr.positionHandler.Create)
		positions.PUT("/:id", pr.positionHandler.Update)
		positions.DELETE("/:id", pr.positionHandler.Delete)
	}
}
