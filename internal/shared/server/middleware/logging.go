package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	DocumentIDKey = "documentId"
	ReportIDKey   = "reportId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"is_guest":    IsGuest(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if id := c.GetString(DocumentIDKey); id != "" {
			fields["document_id"] = id
		}
		if id := c.GetString(ReportIDKey); id != "" {
			fields["report_id"] = id
		}
		metrics.IncHTTPRequests()
		telemetry.Info("request.complete", fields)
	}
}
