package handler

import (
	"backoffice/internal/access"
	"backoffice/internal/dto"
	"backoffice/internal/middleware"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/pkg/response"
	"backoffice/internal/telemetry"
	"backoffice/utils/validate"

	"github.com/gin-gonic/gin"
)

type ViewHandler struct {
	trace  *telemetry.Trace
	routes *access.RouteTable
}

func NewViewHandler(trace *telemetry.Trace) *ViewHandler {
	return &ViewHandler{trace: trace, routes: access.DefaultRouteTable()}
}

// Resolve 解析頁面路由
// @Summary 依呼叫者角色解析頁面
// @Description 權限不足回傳 Permissions Denied，找不到路徑回傳 Page Not Found；兩者都以 200 回應，結果種類放在 kind
// @Tags View
// @Security BearerAuth
// @Produce json
// @Param path path string true "頁面路徑"
// @Param strict query bool false "以 403 / 404 回報"
// @Success 200 {object} dto.ViewResponseDto
// @Router /api/views/{path} [get]
func (h *ViewHandler) Resolve(c *gin.Context) {
	_, _, end := h.trace.WithSpan(c)
	defer end(nil)

	path := c.Param("path")
	result := h.routes.Resolve(path, middleware.CurrentRole(c))
	// strict=true 時以 HTTP 狀態碼回報 Denied / NotFound
	if validate.GetBoolQuery(c, "strict", false) && result.Kind != access.ResultView {
		err := cErr.MapHttpStatusToError(result.StatusCode(), result.Message)
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, &dto.ViewResponseDto{Path: path, Result: result})
}

// Routes 列出所有頁面與所需角色
// @Summary 頁面路由表
// @Tags View
// @Produce json
// @Success 200 {array} access.Route
// @Router /api/routes [get]
func (h *ViewHandler) Routes(c *gin.Context) {
	response.Success(c, h.routes.Routes())
}
