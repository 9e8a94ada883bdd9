package router

import (
	"backoffice/internal/access"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AssignmentRouter struct {
	assignmentHandler *handler.AssignmentHandler
	roleMiddleware    *middleware.Role
}

func NewAssignmentRouter(assignmentHandler *handler.AssignmentHandler, roleMiddleware *middleware.Role) *AssignmentRouter {
	return &AssignmentRouter{assignmentHandler: assignmentHandler, roleMiddleware: roleMiddleware}
}

func (ar *AssignmentRouter) RegisterRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/assignment-sessions")
	sessions.Use(ar.roleMiddleware.Require(access.RoleAdmin))
	{
		sessions.POST("", ar.assignmentHandler.Open)
		sessions.GET("/:sessionID", ar.assignmentHandler.Get)
		sessions.DELETE("/:sessionID", ar.assignmentHandler.Close)
		sessions.PUT("/:sessionID/position", ar.assignmentHandler.ChangePosition)
		sessions.PUT("/:sessionID/workplace", ar.assignmentHandler.ChangeWorkplace)
		sessions.PUT("/:sessionID/manager", ar.assignmentHandler.ChangeManager)
		sessions.PUT("/:sessionID/details", ar.assignmentHandler.ChangeDetails)
		sessions.POST("/:sessionID/submit", ar.assignmentHandler.Submit)
	}
}
