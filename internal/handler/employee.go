package handler

import (
	"backoffice/internal/dto"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/pkg/response"
	"backoffice/internal/service"
	"backoffice/internal/telemetry"
	"backoffice/utils/validate"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	trace           *telemetry.Trace
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(trace *telemetry.Trace, employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{trace: trace, employeeService: employeeService}
}

// List 員工列表
// @Summary 員工列表（支援姓名 / 職稱搜尋）
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param search query string false "姓名、職稱、id 或薪資"
// @Param positionId query int false "職位 id"
// @Success 200 {object} dto.EmployeeListResponseDto
// @Router /api/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	positionID, err := validate.GetInt64Query(c, "positionId", 0)
	if err != nil {
		end(err)
		response.AbortWithError(c, cErr.ValidatePathQueryErr("invalid positionId"))
		return
	}
	resp, err := h.employeeService.List(ctx, c.Query("search"), positionID)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Get 單一員工
// @Summary 取得員工
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.EmployeeResponseDto
// @Failure 404 {object} response.Response
// @Router /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.Detail(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Hierarchy 主管鏈與直屬下屬
// @Summary 員工的主管鏈與直屬下屬
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.EmployeeHierarchyResponseDto
// @Router /api/employees/{id}/hierarchy [get]
func (h *EmployeeHandler) Hierarchy(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.Hierarchy(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// AverageSalary 直屬下屬平均薪資
// @Summary 直屬下屬平均薪資
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {object} dto.AverageSalaryResponseDto
// @Router /api/employees/{id}/average-salary [get]
func (h *EmployeeHandler) AverageSalary(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.AverageSalary(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Create 新增員工
// @Summary 新增員工（伺服器端以指派規則驗證）
// @Tags Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.EmployeeInputDto true "員工資料"
// @Success 201 {object} dto.EmployeeResponseDto
// @Failure 422 {object} response.Response
// @Router /api/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.EmployeeInputDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.Create(actorContext(c, ctx), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, resp)
}

// Update 修改員工
// @Summary 覆寫員工資料
// @Tags Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body dto.EmployeeInputDto true "員工資料"
// @Success 200 {object} dto.EmployeeResponseDto
// @Failure 422 {object} response.Response
// @Router /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.EmployeeInputDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.Update(actorContext(c, ctx), id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// Delete 刪除員工
// @Summary 刪除員工
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.Response
// @Router /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseID(c, "id")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	if err := h.employeeService.Remove(actorContext(c, ctx), id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Employee deleted"})
}

// SalaryIndexation 薪資指數化
// @Summary 依百分比區間調整所有員工薪資
// @Description 最低薪資調 maxPercentage，最高薪資調 minPercentage，其餘線性分配；沒有薪資的員工略過
// @Tags Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.SalaryIndexationDto true "百分比區間"
// @Success 200 {object} dto.SalaryIndexationResponseDto
// @Failure 422 {object} response.Response
// @Router /api/employees/salary-indexation [post]
func (h *EmployeeHandler) SalaryIndexation(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.SalaryIndexationDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	resp, err := h.employeeService.ApplySalaryIndexation(actorContext(c, ctx), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}
