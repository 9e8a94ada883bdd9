package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"backoffice/internal/core"
	"backoffice/internal/database/fluentd/model"
	"backoffice/internal/database/fluentd/repository"
	cErr "backoffice/internal/pkg/error"
	res "backoffice/internal/pkg/response"
	"backoffice/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		fluentdRepository: fluentdRepository,
	}
}

// failure 一次失敗回應需要的資訊
type failure struct {
	code    int
	status  int
	message string
	detail  string
	// reason 為指標 label：panic / app / unknown
	reason string
	err    error
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := requestStart(c)
		requestID := newRequestID()

		// recover 必須在 c.Next() 之前註冊
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := toSafeStack(debug.Stack())
			appErr := cErr.InternalServer("unexpected panic")
			f := failure{
				code:    cErr.INTERNAL_ERROR,
				status:  http.StatusInternalServerError,
				message: appErr.Error(),
				detail:  toSafeString(fmt.Sprint(rec)),
				reason:  "panic",
				err:     appErr,
			}
			middleware.fail(c, requestID, startedAt, f, func(span trace.Span, duration time.Duration) {
				middleware.trace.ApplyTraceAttributes(span, core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    f.detail,
					Stack:      stack,
					Status:     f.status,
				})
				middleware.logger.Error("[PANIC] Recovered",
					append(spanFields(span),
						zap.String("path", c.Request.URL.Path),
						zap.String("method", c.Request.Method),
						zap.String("client_ip", c.ClientIP()),
						zap.Duration("duration", duration),
						zap.String("panic", f.detail),
						zap.String("stacktrace", stack),
						zap.String("requestId", requestID),
					)...,
				)
			})
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		f := classify(c.Errors, c.Errors.String())
		middleware.fail(c, requestID, startedAt, f, func(span trace.Span, duration time.Duration) {
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       f.code,
				Message:    f.message,
				Detail:     f.detail,
				DurationMs: float64(duration.Milliseconds()),
				Status:     f.status,
			})
			middleware.logger.Warn(f.message,
				append(spanFields(span),
					zap.Int("code", f.code),
					zap.Int("status", f.status),
					zap.String("detail", f.detail),
					zap.Duration("duration", duration),
					zap.String("requestId", requestID),
				)...,
			)
		})
	}
}

// classify 取第一個應用錯誤；沒有時視為未知的 500
func classify(errs []*gin.Error, summary string) failure {
	for _, e := range errs {
		var appErr *cErr.Error
		if errors.As(e.Err, &appErr) {
			return failure{
				code:    appErr.ErrorCode(),
				status:  appErr.HttpCode(),
				message: appErr.Error(),
				detail:  appErr.ErrorDesc(),
				reason:  "app",
				err:     appErr,
			}
		}
	}
	unknown := toSafeString(summary)
	return failure{
		code:    cErr.INTERNAL_ERROR,
		status:  http.StatusInternalServerError,
		message: "unknown-error",
		detail:  unknown,
		reason:  "unknown",
		err:     errs[len(errs)-1].Err,
	}
}

// fail 開 span、交給 annotate 補屬性與 log，輸出錯誤回應並送 fluentd
func (middleware *Recovery) fail(c *gin.Context, requestID string, startedAt time.Time, f failure, annotate func(trace.Span, time.Duration)) {
	duration := time.Since(startedAt)
	ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
	annotate(span, duration)
	end(f.err)

	if !c.Writer.Written() {
		if appErr, ok := f.err.(*cErr.Error); ok {
			res.FailByErr(c, requestID, appErr)
		} else {
			res.Fail(c, requestID, f.status, f.code, f.message, f.detail)
		}
	}
	c.Abort()

	responseLog := model.ResponseLog{
		RequestID:  requestID,
		Path:       c.Request.URL.Path,
		Code:       f.code,
		StatusCode: f.status,
		Error:      f.detail,
		ResponseTS: time.Now().UTC().Format(responseTSLayout),
	}
	if err := middleware.fluentdRepository.LogResponse(ctx, responseLog); err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
	telemetry.Inc(middleware.metric.ResponseFailTotal, f.reason)
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func toSafeString(s string) string {
	return toSafePreview([]byte(s), 8000)
}

func toSafeStack(b []byte) string {
	return toSafePreview(b, 16000)
}
