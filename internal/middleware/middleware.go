package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
	NewRole,
)

// 這些路徑不做 tracing / log / 回應封裝
func skipInstrumentation(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}

const requestStartKey = "requestStartedAt"

// requestStart 第一個呼叫的 middleware 決定請求起點
func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(requestStartKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	now := time.Now().UTC()
	c.Set(requestStartKey, now)
	return now
}

// truncate 依 byte 長度截斷，附上省略號
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

const responseTSLayout = "2006-01-02 15:04:05.999999 UTC"

// spanFields log 用的 trace / span id
func spanFields(span trace.Span) []zap.Field {
	sc := span.SpanContext()
	return []zap.Field{
		zap.String("spanId", sc.SpanID().String()),
		zap.String("traceId", sc.TraceID().String()),
	}
}
