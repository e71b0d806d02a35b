package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/server/respond"
	"aerogap-backend/internal/shared/telemetry"
)

// Recovery converts a handler panic into a 500 error envelope and logs the
// stack as an http.panic event.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		fields := map[string]any{
			"request_id": RequestIDFromContext(c),
			"error":      fmt.Sprint(rec),
			"stack":      string(debug.Stack()),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}
		if userID := UserIDFromContext(c); userID != "" {
			fields["user_id"] = userID
		}
		telemetry.Error("http.panic", fields)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
	})
}
