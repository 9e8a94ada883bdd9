package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanRoleMiddleware     TraceSpanName = "role_middleware"
	SpanCatalogFetch       TraceSpanName = "catalog_fetch"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal          MetricName = "requests_total"
	MetricHttpRequestDuration        MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal       MetricName = "response_success_total"
	MetricResponseFailTotal          MetricName = "response_fail_total"
	MetricAccessDeniedTotal          MetricName = "access_denied_total"
	MetricAssignmentEditRejected     MetricName = "assignment_edit_rejected_total"
	MetricAssignmentSubmissionsTotal MetricName = "assignment_submissions_total"
	MetricAssignmentOpenSessions     MetricName = "assignment_open_sessions"
	MetricCatalogFetchTotal          MetricName = "catalog_fetch_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint   MetricLabelName = "endpoint"
	MetricLabelStatus     MetricLabelName = "status"
	MetricLabelReason     MetricLabelName = "reason"
	MetricLabelRole       MetricLabelName = "role"
	MetricLabelField      MetricLabelName = "field"
	MetricLabelOutcome    MetricLabelName = "outcome"
	MetricLabelCollection MetricLabelName = "collection"
	MetricLabelSource     MetricLabelName = "source"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
	Role              string `trace:"auth.role,omitempty"`
}

// 角色判斷（RoleResolver / RoleGuard）
type TraceRoleMeta struct {
	Username string `trace:"auth.username,omitempty"`
	Role     string `trace:"auth.role"`
	Required string `trace:"auth.required_role,omitempty"`
	Allowed  bool   `trace:"auth.allowed"`
	Status   string `trace:"auth.status,omitempty"`
}

// 參考資料抓取（單一集合）
type TraceCatalogFetchMeta struct {
	Collection string  `trace:"catalog.collection"`
	Source     string  `trace:"catalog.source"` // cache / mongo
	Count      int     `trace:"catalog.count"`
	Error      *string `trace:"error,omitempty"`
}

// 編輯工作階段的單一事件
type TraceAssignmentMeta struct {
	SessionID  string   `trace:"assignment.session_id"`
	Op         string   `trace:"assignment.op"`
	EmployeeID int64    `trace:"assignment.employee_id,omitempty"`
	State      string   `trace:"assignment.state"`
	Violations []string `trace:"assignment.violations,omitempty"`
	Pending    []string `trace:"assignment.pending_collections,omitempty"`
}

type TraceEmployeeListMeta struct {
	Search      string `trace:"list.search,omitempty"`
	Total       int    `trace:"list.total"`
	ResultCount int    `trace:"result.count"`
}

// 員工資料寫入 MongoDB
type TraceEmployeeWriteMeta struct {
	Op            string `trace:"op"`
	EmployeeID    int64  `trace:"employee.id,omitempty"`
	MatchedCount  int64  `trace:"mongo.matched_count,omitempty"`
	ModifiedCount int64  `trace:"mongo.modified_count,omitempty"`
}

// 職位寫入
type TracePositionWriteMeta struct {
	Op           string `trace:"op"`
	PositionID   int64  `trace:"position.id,omitempty"`
	Category     string `trace:"position.category,omitempty"`
	Holders      int    `trace:"position.holders,omitempty"`
	MatchedCount int64  `trace:"mongo.matched_count,omitempty"`
}

// Redis 快取讀寫
type TraceCacheMeta struct {
	Key   string `trace:"cache.key"`
	Op    string `trace:"cache.op"`
	Hit   bool   `trace:"cache.hit"`
	Bytes int    `trace:"cache.bytes,omitempty"`
}
