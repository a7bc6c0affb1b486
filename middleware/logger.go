package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	loggerKey     = "logger"
	TraceIDHeader = "X-Trace-ID"
)

// RequestLogger tags every request with a trace id, reusing a valid incoming
// X-Trace-ID, and logs its start and finish.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}

		reqLog := log.With("trace_id", traceID)
		httpLog := reqLog.With(
			"http_method", c.Request.Method,
			"http_path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
		)

		c.Set(loggerKey, reqLog)
		c.Header(TraceIDHeader, traceID)

		start := time.Now()
		httpLog.Debug("request started")

		c.Next()

		attrs := []any{
			"status_code", c.Writer.Status(),
			"bytes_written", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		httpLog.Info("request finished", attrs...)
	}
}

// LoggerFrom returns the request logger, or slog.Default outside a request.
func LoggerFrom(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
