package router

import (
	docs "backoffice/cmd/docs"
	"backoffice/config"
	"backoffice/internal/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewHealthRouter,
	NewViewRouter,
	NewCatalogRouter,
	NewEmployeeRouter,
	NewAssignmentRouter,
	NewPositionRouter,
)

// 透過依賴注入將各 router 掛到同一個 gin.Engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	roleMiddleware *middleware.Role,
	healthRouter *HealthRouter,
	viewRouter *ViewRouter,
	catalogRouter *CatalogRouter,
	employeeRouter *EmployeeRouter,
	assignmentRouter *AssignmentRouter,
	positionRouter *PositionRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(traceEntry.Handler())
	router.Use(func(c *gin.Context) {
		if v := config.App.Version; v != "" {
			c.Writer.Header().Set("X-App-Version", v)
		}
		c.Next()
	})
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(responseMiddleware.FormatHandler())

	// 探針與監控不看 Authorization，壞掉的 token 不該讓 liveness 失敗
	healthRouter.RegisterHealthRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.App.SwaggerEnabled {
		router.GET("/swagger/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host

			if config.App.Env == "production" {
				docs.SwaggerInfo.Schemes = []string{"https"}
				docs.SwaggerInfo.BasePath = "/backoffice"
			}
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group("/api")
	// logger 排在 role 之後才拿得到角色與使用者
	api.Use(roleMiddleware.Resolver())
	api.Use(logger.LoggerHandler())
	viewRouter.RegisterRoutes(api)
	catalogRouter.RegisterRoutes(api)
	employeeRouter.RegisterRoutes(api)
	assignmentRouter.RegisterRoutes(api)
	positionRouter.RegisterRoutes(api)

	pprof.Register(router)
	return router
}
