package middleware

import (
	"net"
	"strconv"
	"time"

	"backoffice/config"
	"backoffice/internal/core"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceEntry 每個請求的 server span 與 HTTP 指標，排在所有 middleware 最前面
type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipInstrumentation(c.FullPath()) {
			c.Next()
			return
		}
		start := requestStart(c)
		route := routeLabel(c)

		parent := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := m.trace.StartSpanForLayer(parent, core.TraceSpanName(c.Request.Method+" "+route), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		c.Next()

		status := c.Writer.Status()
		meta := m.serverMeta(c, route, span)
		meta.HttpStatusCode = status
		meta.Role = CurrentRole(c).String()
		m.trace.ApplyTraceAttributes(span, meta)

		telemetry.Inc(m.metric.HttpRequestsTotal, route, strconv.Itoa(status))
		telemetry.Observe(m.metric.HttpRequestDuration, time.Since(start).Seconds(), route)

		var spanErr error
		if status >= 400 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.trace.EndSpan(span, spanErr)
	}
}

// routeLabel 用 route 樣板避免 id 造成高基數
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func (m *TraceEntry) serverMeta(c *gin.Context, route string, span trace.Span) core.TraceHttpServerMeta {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	peerAddr, peerPort := peerOf(c)
	return core.TraceHttpServerMeta{
		ClientAddr:        c.ClientIP(),
		HttpRequestMethod: c.Request.Method,
		HttpRoute:         route,
		UrlPath:           c.Request.URL.Path,
		UrlScheme:         scheme,
		UserAgent:         c.Request.UserAgent(),
		ServerAddress:     m.conf.App.Name,
		NetworkPeerAddr:   peerAddr,
		NetworkPeerPort:   peerPort,
		NetworkProtoVer:   c.Request.Proto,
		SpanKind:          trace.SpanKindServer.String(),
		SpanTraceID:       span.SpanContext().TraceID().String(),
	}
}

func peerOf(c *gin.Context) (string, int) {
	host, port, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.ClientIP(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
