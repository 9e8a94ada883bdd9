package handler

import (
	"backoffice/internal/organization"
	"backoffice/internal/pkg/response"
	"backoffice/internal/service"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	trace          *telemetry.Trace
	catalogService *service.CatalogService
}

func NewCatalogHandler(trace *telemetry.Trace, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{trace: trace, catalogService: catalogService}
}

// Collection 參考資料
// @Summary 取得參考資料集合
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param collection path string true "positions | supermarkets | warehouses | addresses"
// @Success 200 {object} dto.CatalogCollectionResponseDto
// @Failure 404 {object} response.Response
// @Router /api/catalog/{collection} [get]
func (h *CatalogHandler) Collection(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	resp, err := h.catalogService.Collection(ctx, organization.CollectionKind(c.Param("collection")))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}
