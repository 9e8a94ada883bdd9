package handler

import (
	"backoffice/internal/dto"
	"backoffice/internal/pkg/response"
	"backoffice/internal/service"
	"backoffice/internal/telemetry"
	"backoffice/utils/validate"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	trace           *telemetry.Trace
	positionService *service.PositionService
}

func NewPositionHandler(trace *telemetry.Trace, positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{trace: trace, positionService: positionService}
}

// Create 新增職位
// @Summary 新增職位
// @Description category 省略時依職稱推斷；名稱重複回傳 409
// @Tags Position
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.PositionInputDto true "職位"
// @Success 201 {object} dto.PositionResponseDto
// @Failure 409 {object} response.Response
// @Router /api/positions [post]
func (h *PositionHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.PositionInputDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.positionService.Create(ctx, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, resp)
}

// Update 修改職位
// @Summary 修改職位
// @Description 有員工擔任的職位不能改成要求不同工作地點種類的分類
// @Tags Position
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param body body dto.PositionInputDto true "職位"
// @Success 200 {object} dto.PositionResponseDto
// @Failure 409 {object} response.Response
// @Router /api/positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.PositionInputDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.positionService.Update(ctx, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete 刪除職位
// @Summary 刪除職位（仍有員工擔任時回傳 409）
// @Tags Position
// @Security BearerAuth
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} response.Response
// @Router /api/positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	if err := h.positionService.Delete(ctx, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Position deleted"})
}
