package organization

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCatalogNotReady 目錄尚未完整載入時計算主管名單，結果不可信
	ErrCatalogNotReady = errors.New("organization catalog is still loading")
	ErrSubmitInFlight  = errors.New("submission already in flight")
	ErrSessionClosed   = errors.New("assignment session is closed")
	ErrNotFound        = errors.New("not found")
)

// 違規代碼
const (
	CodeRequired          = "required"
	CodeNotFound          = "not_found"
	CodeMustBeEmpty       = "must_be_empty"
	CodeKindMismatch      = "kind_mismatch"
	CodeSelfManagement    = "self_management"
	CodeWorkplaceMismatch = "workplace_mismatch"
	CodeNotEligible       = "not_eligible"
	CodeCatalogLoading    = "catalog_loading"
	CodeNegative          = "negative"
	CodeOutOfRange        = "out_of_range"
	CodeRejected          = "rejected"
)

// 欄位名稱與 JSON 欄位一致
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldPosition    = "position"
	FieldWorkplace   = "workplace"
	FieldManager     = "manager"
	FieldSalary      = "salary"
	FieldWeeklyHours = "weeklyHours"
	FieldAddress     = "address"
)

type FieldViolation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Message
}

type Violations []FieldViolation

func (vs Violations) Empty() bool {
	return len(vs) == 0
}

func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (vs Violations) Codes(field string) []string {
	var codes []string
	for _, v := range vs {
		if v.Field == field {
			codes = append(codes, v.Code)
		}
	}
	return codes
}

func (vs *Violations) add(field, code, format string, args ...any) {
	*vs = append(*vs, FieldViolation{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// ValidationError 本地或伺服器端驗證失敗，每一筆都對應到欄位
type ValidationError struct {
	Violations Violations
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NetworkError 外部資料來源無法連線或回應失敗
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
