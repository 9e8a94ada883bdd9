package router

import (
	"backoffice/internal/handler"

	"github.com/gin-gonic/gin"
)

// ViewRouter 頁面路由表查詢，任何角色都能呼叫，結果本身已經過角色判斷
type ViewRouter struct {
	viewHandler *handler.ViewHandler
}

func NewViewRouter(viewHandler *handler.ViewHandler) *ViewRouter {
	return &ViewRouter{viewHandler: viewHandler}
}

func (vr *ViewRouter) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/views/*path", vr.viewHandler.Resolve)
	api.GET("/routes", vr.viewHandler.Routes)
}
