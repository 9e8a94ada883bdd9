package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"backoffice/internal/core"
	"backoffice/internal/database/fluentd/model"
	"backoffice/internal/database/fluentd/repository"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bodyPreviewLimit = 2000

// 這些 header 不進 log / fluentd
var redactedHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 在 handler 之前記錄請求；需排在 Role.Resolver 之後
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipInstrumentation(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		req := c.Request
		body := requestBody(c)
		headers := requestHeaders(req.Header)
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		role := CurrentRole(c).String()
		username := c.GetString(core.ContextUsernameKey)

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     req.Method,
			Path:       req.URL.Path,
			FullPath:   endpoint,
			Query:      req.URL.RawQuery,
			Body:       body,
			Scheme:     req.URL.Scheme,
			Host:       req.Host,
			UserAgent:  req.UserAgent(),
			ContentLen: req.ContentLength,
			Proto:      req.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headers,
			Params:     params,
		})

		fields := append(spanFields(span),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("role", role),
			zap.Any("headers", headers),
		)
		if username != "" {
			fields = append(fields, zap.String("username", username))
		}
		if req.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", req.URL.RawQuery))
		}
		if len(params) > 0 {
			fields = append(fields, zap.Any("params", params))
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}
		m.logger.Info("[Request] "+req.Method+" "+endpoint, fields...)

		requestLog := model.RequestLog{
			RequestID: span.SpanContext().TraceID().String(),
			Method:    req.Method,
			Path:      req.URL.Path,
			Role:      role,
			Username:  username,
			RequestTS: requestStart(c).Format(responseTSLayout),
			Body:      body,
			IPHash:    hashIP(c.ClientIP()),
			UserAgent: req.UserAgent(),
		}
		if err := m.fluentdRepository.LogRequest(ctx, requestLog); err != nil {
			m.logger.Warn("fluentd request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// requestBody 讀出文字 body 的預覽並回填，二進位內容只記型別與長度
func requestBody(c *gin.Context) string {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if isBinaryContent(mediaType) {
		if c.Request.ContentLength > 0 {
			return fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		}
		return fmt.Sprintf("(binary %s)", mediaType)
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}
	data, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	return toSafePreview(data, bodyPreviewLimit)
}

// requestHeaders 小寫 key，敏感 header 遮蔽
func requestHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		lk := strings.ToLower(k)
		if redactedHeaders[lk] {
			out[lk] = "[redacted]"
			continue
		}
		out[lk] = strings.Join(v, ",")
	}
	return out
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}

// toSafePreview UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		return truncate(string(b), max)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func isBinaryContent(mediaType string) bool {
	for _, prefix := range []string{"multipart/", "image/", "audio/", "video/"} {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return mediaType == "application/octet-stream"
}
