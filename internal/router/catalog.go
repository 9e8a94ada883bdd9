package router

import (
	"backoffice/internal/access"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CatalogRouter struct {
	catalogHandler *handler.CatalogHandler
	roleMiddleware *middleware.Role
}

func NewCatalogRouter(catalogHandler *handler.CatalogHandler, roleMiddleware *middleware.Role) *CatalogRouter {
	return &CatalogRouter{catalogHandler: catalogHandler, roleMiddleware: roleMiddleware}
}

func (cr *CatalogRouter) RegisterRoutes(api *gin.RouterGroup) {
	catalog := api.Group("/catalog")
	catalog.Use(cr.roleMiddleware.Require(access.RoleEmployee))
	{
		catalog.GET("/:collection", cr.catalogHandler.Collection)
	}
}
