package handler

import (
	"backoffice/internal/dto"
	"backoffice/internal/pkg/response"
	"backoffice/internal/service"
	"backoffice/internal/telemetry"
	"backoffice/utils/validate"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	trace             *telemetry.Trace
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(trace *telemetry.Trace, assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{trace: trace, assignmentService: assignmentService}
}

// Open 開啟編輯工作階段
// @Summary 開啟員工指派編輯（employeeId 省略代表新增）
// @Tags Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.OpenAssignmentDto false "編輯對象"
// @Success 201 {object} dto.AssignmentSessionResponseDto
// @Failure 404 {object} response.Response
// @Router /api/assignment-sessions [post]
func (h *AssignmentHandler) Open(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.OpenAssignmentDto
	if c.Request.ContentLength != 0 {
		if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
			end(cause)
			response.AbortWithError(c, respErr)
			return
		}
	}
	if validate.GetBoolQuery(c, "wait", false) {
		req.Wait = true
	}
	resp, err := h.assignmentService.Open(actorContext(c, ctx), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, resp)
}

// Get 目前的表單狀態
// @Summary 取得編輯工作階段
// @Tags Assignment
// @Security BearerAuth
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Failure 404 {object} response.Response
// @Router /api/assignment-sessions/{sessionID} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	resp, err := h.assignmentService.Get(ctx, c.Param("sessionID"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// ChangePosition 變更職位（工作地點與主管會被清空）
// @Summary 變更職位
// @Tags Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.ChangePositionDto true "職位"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/assignment-sessions/{sessionID}/position [put]
func (h *AssignmentHandler) ChangePosition(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.ChangePositionDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.assignmentService.ChangePosition(ctx, c.Param("sessionID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// ChangeWorkplace 變更工作地點（主管會被清空）
// @Summary 變更工作地點
// @Tags Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.ChangeWorkplaceDto true "工作地點"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Failure 422 {object} response.Response
// @Router /api/assignment-sessions/{sessionID}/workplace [put]
func (h *AssignmentHandler) ChangeWorkplace(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.ChangeWorkplaceDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.assignmentService.ChangeWorkplace(ctx, c.Param("sessionID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// ChangeManager 指定主管（必須在候選名單內）
// @Summary 指定主管
// @Tags Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.ChangeManagerDto true "主管"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Failure 422 {object} response.Response
// @Router /api/assignment-sessions/{sessionID}/manager [put]
func (h *AssignmentHandler) ChangeManager(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.ChangeManagerDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.assignmentService.ChangeManager(ctx, c.Param("sessionID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// ChangeDetails 姓名、薪資、工時、到職日、地址
// @Summary 修改其他欄位
// @Tags Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.ChangeDetailsDto true "欄位"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Router /api/assignment-sessions/{sessionID}/details [put]
func (h *AssignmentHandler) ChangeDetails(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.ChangeDetailsDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.assignmentService.ChangeDetails(ctx, c.Param("sessionID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Submit 驗證並儲存
// @Summary 送出編輯
// @Tags Assignment
// @Security BearerAuth
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.AssignmentSessionResponseDto
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/assignment-sessions/{sessionID}/submit [post]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	resp, err := h.assignmentService.Submit(actorContext(c, ctx), c.Param("sessionID"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Close 放棄編輯
// @Summary 關閉編輯工作階段
// @Tags Assignment
// @Security BearerAuth
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} map[string]string
// @Router /api/assignment-sessions/{sessionID} [delete]
func (h *AssignmentHandler) Close(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	if err := h.assignmentService.Close(ctx, c.Param("sessionID")); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Session closed"})
}
