package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"purelife/pkg/logger"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
			"trace_id", c.GetString("trace_id"),
		}
		if p, ok := CurrentPrincipal(c); ok {
			args = append(args, "user_id", p.ID, "role", string(p.Role))
		}

		log := logger.WithComponent("http")
		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("request completed with server error", args...)
		case status >= 400:
			log.Warn("request completed with client error", args...)
		default:
			log.Debug("request completed", args...)
		}
	}
}
