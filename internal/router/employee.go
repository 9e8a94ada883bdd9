package router

import (
	"backoffice/internal/access"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

type EmployeeRouter struct {
	employeeHandler *handler.EmployeeHandler
	roleMiddleware  *middleware.Role
}

func NewEmployeeRouter(employeeHandler *handler.EmployeeHandler, roleMiddleware *middleware.Role) *EmployeeRouter {
	return &EmployeeRouter{employeeHandler: employeeHandler, roleMiddleware: roleMiddleware}
}

// RegisterRoutes 讀取需要 employee，寫入需要 admin
func (er *EmployeeRouter) RegisterRoutes(api *gin.RouterGroup) {
	employees := api.Group("/employees")
	employees.Use(er.roleMiddleware.Require(access.RoleEmployee))
	{
		employees.GET("", er.employeeHandler.List)
		employees.GET("/:id", er.employeeHandler.Get)
		employees.GET("/:id/hierarchy", er.employeeHandler.Hierarchy)
		employees.GET("/:id/average-salary", er.employeeHandler.AverageSalary)
	}

	admin := employees.Group("")
	admin.Use(er.roleMiddleware.Require(access.RoleAdmin))
	{
		admin.POST("", er.employeeHandler.Create)
		admin.POST("/salary-indexation", er.employeeHandler.SalaryIndexation)
		admin.PUT("/:id", er.employeeHandler.Update)
		admin.DELETE("/:id", er.employeeHandler.Delete)
	}
}
