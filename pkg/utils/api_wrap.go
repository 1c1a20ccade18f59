package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"purelife/pkg/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	TraceID string      `json:"trace_id,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIResponse{
		Success: false,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondBindError reports the first failing request field.
func RespondBindError(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, FirstFieldError(err))
}

func HandleServiceError(c *gin.Context, err error) {
	var appErr *AppError

	switch {
	case errors.Is(err, ErrDatabaseError):
		logger.Error("database error",
			"path", c.Request.URL.Path,
			"trace_id", c.GetString("trace_id"),
			"error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	case errors.As(err, &appErr):
		RespondError(c, StatusFor(appErr.Kind()), appErr.Error())
	default:
		logger.Error("unexpected error",
			"path", c.Request.URL.Path,
			"trace_id", c.GetString("trace_id"),
			"error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind error) int {
	switch kind {
	case ErrValidation, ErrBusinessRule:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
