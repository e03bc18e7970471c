package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/logger"
	"github.com/boilerparts/backend/internal/interfaces/http/dto"
	"github.com/boilerparts/backend/internal/interfaces/http/middleware"
	"github.com/boilerparts/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newContext returns a gin context with a request id and an observed logger
func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder, *observer.ObservedLogs) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	core, logs := observer.New(zapcore.DebugLevel)
	c.Set(logger.GinContextKey, zap.New(core))
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w, logs
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.NotFoundf("Boiler part with id %d not found", 9), http.StatusNotFound, dto.ErrCodeNotFound, "Boiler part with id 9 not found"},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.NewDomainError(shared.CodeUnauthorized, "nope")), http.StatusUnauthorized, dto.ErrCodeUnauthorized, "nope"},
		{"invalid input", shared.InvalidInputf("limit must be a non-negative integer"), http.StatusBadRequest, dto.ErrCodeInvalidInput, "limit must be a non-negative integer"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrCodeTimeout, "Request timed out"},
		{"unknown error", errors.New("pq: connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))

			h.HandleError(c, tt.err)

			info := testutil.AssertErrorResponse(t, w, tt.status, tt.code)
			assert.Equal(t, tt.message, info.Message)
			assert.Equal(t, "req-1", info.RequestID)
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestBaseHandler_HandleError_LogsUnknownErrors(t *testing.T) {
	h := &BaseHandler{}
	c, w, logs := newContext(httptest.NewRequest(http.MethodGet, "/", nil))

	h.HandleError(c, errors.New("pq: connection reset"))

	assert.NotContains(t, w.Body.String(), "connection reset")
	entries := logs.FilterMessage("Unhandled error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, w, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))

	h.HandleError(c, nil)

	assert.False(t, c.Writer.Written())
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_BindJSON(t *testing.T) {
	type body struct {
		Name string `json:"name" binding:"required"`
	}
	h := &BaseHandler{}

	t.Run("malformed json", func(t *testing.T) {
		c, w, _ := newContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
		var b body
		assert.False(t, h.bindJSON(c, &b))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})

	t.Run("missing field", func(t *testing.T) {
		c, w, _ := newContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
		var b body
		assert.False(t, h.bindJSON(c, &b))
		info := testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "name", info.Details[0].Field)
	})

	t.Run("body too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
		c, w, _ := newContext(req)
		req.Body = http.MaxBytesReader(w, req.Body, 16)
		var b body
		assert.False(t, h.bindJSON(c, &b))
		testutil.AssertErrorResponse(t, w, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge)
	})

	t.Run("optional body may be empty", func(t *testing.T) {
		c, w, _ := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
		var b struct {
			Count *int `json:"count"`
		}
		assert.True(t, h.bindOptionalJSON(c, &b))
		assert.Nil(t, b.Count)
		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_ParseIDParam(t *testing.T) {
	h := &BaseHandler{}

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			c, w, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
			c.Params = gin.Params{{Key: "id", Value: raw}}

			_, ok := h.parseIDParam(c, "id")
			assert.False(t, ok)
			info := testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
			assert.Equal(t, "Invalid id: must be a positive integer", info.Message)
		})
	}

	c, _, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := h.parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
