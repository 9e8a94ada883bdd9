package access

import "net/http"

type ResultKind string

const (
	ResultView     ResultKind = "view"
	ResultDenied   ResultKind = "denied"
	ResultNotFound ResultKind = "not_found"
)

// Result 路由解析後的渲染結果
type Result struct {
	Kind    ResultKind `json:"kind"`
	View    string     `json:"view,omitempty"`
	Role    Role       `json:"role"`
	Message string     `json:"message,omitempty"`
}

// View 只有在通過權限檢查後才會被呼叫
type View func(current Role) Result

var (
	Denied   = Result{Kind: ResultDenied, Message: "Permissions Denied"}
	NotFound = Result{Kind: ResultNotFound, Message: "Page Not Found"}
)

// StatusCode 對應的 HTTP 狀態碼
func (r Result) StatusCode() int {
	switch r.Kind {
	case ResultDenied:
		return http.StatusForbidden
	case ResultNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

// Guard 權限不足時直接回傳 Denied，view 完全不會被建立
func Guard(required, current Role, view View) Result {
	if !AtLeast(current, required) {
		denied := Denied
		denied.Role = current
		return denied
	}
	return view(current)
}

// Page 建立一個只回傳頁面名稱的 View，並把呼叫者角色往下傳
func Page(name string) View {
	return func(current Role) Result {
		return Result{Kind: ResultView, View: name, Role: current}
	}
}
