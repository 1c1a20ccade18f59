package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc) (*httptest.ResponseRecorder, APIResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set("trace_id", "trace-123")
	handler(c)

	var body APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", NewValidationError("id: must be a positive integer"), http.StatusBadRequest, "id: must be a positive integer"},
		{"business rule", ErrOutOfStock.Withf("Insufficient stock for Zinc"), http.StatusBadRequest, "Insufficient stock for Zinc"},
		{"not found", ErrOrderNotFound, http.StatusNotFound, ErrOrderNotFound.Error()},
		{"unauthenticated", ErrNotAuthenticated, http.StatusUnauthorized, ErrNotAuthenticated.Error()},
		{"forbidden", ErrCartItemForbidden, http.StatusForbidden, ErrCartItemForbidden.Error()},
		{"database", WrapDB(errors.New("connection refused")), http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(func(c *gin.Context) { HandleServiceError(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, "trace-123", body.TraceID)
		})
	}
}

func TestRespondSuccess(t *testing.T) {
	w, body := serve(func(c *gin.Context) { RespondSuccess(c, map[string]int{"n": 1}, "ok") })
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Message)
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, body.Data)
}

func TestAppErrorMatching(t *testing.T) {
	err := ErrOutOfStock.Withf("Insufficient stock for %s", "Zinc")

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.ErrorIs(t, err, ErrBusinessRule)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, ErrBusinessRule, err.Kind())

	again := err.Withf("still short")
	assert.ErrorIs(t, again, ErrOutOfStock)

	wrapped := WrapDB(err)
	assert.Same(t, err, wrapped, "app errors pass through")
	assert.Nil(t, WrapDB(nil))
	assert.ErrorIs(t, WrapDB(errors.New("x")), ErrDatabaseError)
}
