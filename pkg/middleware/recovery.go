package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(error); ok && isBrokenConnection(err) {
			logger.Warn("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err)
			c.Abort()
			return
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"trace_id", c.GetString("trace_id"),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
	})
}

func isBrokenConnection(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
