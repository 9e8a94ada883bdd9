package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY   = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS = 40001 // 400 - 無效的請求參數

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED      = 40100 // 401 - 未授權
	INVALID_SESSION   = 40101 // 401 - token 無效
	FORBIDDEN         = 40301 // 403 - 禁止訪問
	PERMISSION_DENIED = 40302 // 403 - 角色層級不足

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 40900 ~ 40999: 狀態衝突 (409 系列)
	SUBMIT_IN_FLIGHT = 40900 // 409 - 同一份草稿正在送出
	SESSION_CLOSED   = 40901 // 409 - 編輯工作階段已結束
	CONFLICT         = 40999 // 409 - 其他狀態衝突

	// 42200 ~ 42299: 資料驗證失敗 (422 系列)
	VALIDATION_FAILED = 42200 // 422 - 指派規則不成立，data 帶欄位違規

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)

	// 50400 ~ 50499: 外部資料來源錯誤 (504 系列)
	GATEWAY_TIMEOUT = 50400 // 504 - 外部資料來源逾時
)
