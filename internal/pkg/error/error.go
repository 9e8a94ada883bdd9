package error

import (
	"errors"
	"net/http"
)

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
	data      any
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}
}

// From 取出錯誤鏈中的 *Error，沒有時包成 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalServer(err.Error())
}

// WithData 附帶回應 data（例如欄位違規清單），回傳副本
func (e *Error) WithData(data any) *Error {
	cp := *e
	cp.data = data
	return &cp
}

// ✅ 用戶端錯誤 (400 系列)
func ValidateErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request/body", errorDesc)
}

func ValidatePathParamsErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request/params", errorDesc)
}

func ValidatePathQueryErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request/query", errorDesc)
}

// ValidationFailed 指派規則不成立；data 放欄位違規
func ValidationFailed(errorDesc string, violations any) *Error {
	return New(http.StatusUnprocessableEntity, VALIDATION_FAILED, "validation-failed", errorDesc).WithData(violations)
}

func SubmitInFlight(errorDesc string) *Error {
	return New(http.StatusConflict, SUBMIT_IN_FLIGHT, "submit-in-flight", errorDesc)
}

func SessionClosed(errorDesc string) *Error {
	return New(http.StatusConflict, SESSION_CLOSED, "session-closed", errorDesc)
}

func Conflict(errorDesc string) *Error {
	return New(http.StatusConflict, CONFLICT, "conflict", errorDesc)
}

// ✅ 伺服器內部錯誤 (500 系列)
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}

func DatabaseError(errorDesc string) *Error {
	return New(http.StatusInternalServerError, DATABASE_ERROR, "database-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

// ✅ 外部資料來源逾時 (504)
func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

// ✅ 用戶請求錯誤 (400 系列)
func BadRequest(errorDesc string, errorCode ...int) *Error {
	errCode := BAD_REQUEST_BODY
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusBadRequest, errCode, "bad-request", errorDesc)
}

// ✅ 權限錯誤 (401, 403)
func Unauthorized(errorDesc string, errorCode ...int) *Error {
	errCode := UNAUTHORIZED
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusUnauthorized, errCode, "unauthorized", errorDesc)
}

func InvalidSession(errorDesc string) *Error {
	return New(http.StatusUnauthorized, INVALID_SESSION, "invalid-session", errorDesc)
}

func Forbidden(errorDesc string, errorCode ...int) *Error {
	errCode := FORBIDDEN
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusForbidden, errCode, "forbidden", errorDesc)
}

// PermissionDenied 角色層級不足；訊息固定與頁面的 Permissions Denied 一致
func PermissionDenied(errorDesc string) *Error {
	return New(http.StatusForbidden, PERMISSION_DENIED, "Permissions Denied", errorDesc)
}

// ✅ 資源找不到 (404)
func NotFound(errorDesc string, errorCode ...int) *Error {
	errCode := NOT_FOUND
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusNotFound, errCode, "not-found", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}

func (e *Error) ErrorDesc() string {
	return e.errorDesc
}

func (e *Error) Data() any {
	return e.data
}

func (e *Error) Error() string {
	return e.errorMsg
}

// statusErrors handler 只設了狀態碼時對應的錯誤
var statusErrors = map[int]func(desc string) *Error{
	http.StatusBadRequest:   func(desc string) *Error { return BadRequest(desc) },
	http.StatusUnauthorized: func(desc string) *Error { return Unauthorized(desc) },
	http.StatusForbidden:    func(desc string) *Error { return Forbidden(desc) },
	http.StatusNotFound:     func(desc string) *Error { return NotFound(desc) },
	http.StatusConflict:     func(desc string) *Error { return Conflict(desc) },
	http.StatusUnprocessableEntity: func(desc string) *Error {
		return New(http.StatusUnprocessableEntity, VALIDATION_FAILED, "validation-failed", desc)
	},
	http.StatusServiceUnavailable: ServiceUnavailable,
	http.StatusGatewayTimeout:     GatewayTimeout,
}

func MapHttpStatusToError(status int, desc string) *Error {
	if build, ok := statusErrors[status]; ok {
		return build(desc)
	}
	return InternalServer(desc)
}
