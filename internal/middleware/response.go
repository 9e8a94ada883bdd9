package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/core"
	"backoffice/internal/database/fluentd/model"
	"backoffice/internal/database/fluentd/repository"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/pkg/response"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	tracePreviewLimit   = 2000
	fluentdPreviewLimit = 4000
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 把 handler 透過 response.Success / Create 留下的資料包成統一回應
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if skipInstrumentation(endpoint) {
			c.Next()
			return
		}
		startedAt := requestStart(c)

		c.Next()

		// 錯誤交給 Recovery；handler 自己寫出的回應不再包裝
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(status, "request error"))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		data, description := handlerResult(c)
		body := response.Response{
			RequestID:   span.SpanContext().TraceID().String(),
			Data:        data,
			Message:     "OK",
			Description: description,
		}
		raw, err := json.Marshal(body)
		if err != nil {
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		duration := time.Since(startedAt)
		preview := string(raw)
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     status,
			Message:    description,
			DurationMs: float64(duration.Milliseconds()),
			Data:       truncate(preview, tracePreviewLimit),
		})
		middleware.logger.Info("[Response] "+description,
			append(spanFields(span),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Int("status", status),
				zap.Duration("duration", duration),
			)...,
		)
		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  body.RequestID,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Body:       truncate(preview, fluentdPreviewLimit),
			ResponseTS: time.Now().UTC().Format(responseTSLayout),
		}); err != nil {
			middleware.logger.Warn("fluentd response log failed", zap.Error(err))
		}
		telemetry.Inc(middleware.metric.ResponseSuccessTotal, endpoint, strconv.Itoa(status))

		// 保留 handler 設定的狀態碼，例如 201
		c.Data(status, "application/json", raw)
	}
}

func handlerResult(c *gin.Context) (any, string) {
	data, _ := c.Get(response.DataKey)
	if data == nil {
		data = map[string]any{}
	}
	description := "Request Success"
	if s, ok := c.Value(response.MessageKey).(string); ok && s != "" {
		description = s
	}
	return data, description
}
