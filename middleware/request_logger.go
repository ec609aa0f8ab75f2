package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"journeatz-api/logging"
)

// RequestLogger emits one structured log line per request and threads the
// request-scoped logger through the context.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := base.With(
			"method", c.Request.Method,
			"path", c.FullPath(),
			"url", c.Request.URL.Path,
			"remote_ip", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()

		switch {
		case status >= 500:
			l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "errors", c.Errors.String())
		case status >= 400:
			l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
		default:
			l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Writer.Size())
		}
	}
}
