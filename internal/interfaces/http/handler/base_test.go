package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/interfaces/http/dto"
	"github.com/mattilda/backend/internal/interfaces/http/middleware"
	"github.com/mattilda/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	middleware.SetupValidator()
}

func newContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	assert.Empty(t, getRequestID(c))

	c.Request.Header.Set(middleware.RequestIDHeader, "from-header")
	assert.Equal(t, "from-header", getRequestID(c))

	c.Set(middleware.RequestIDContextKey, "from-context")
	assert.Equal(t, "from-context", getRequestID(c))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		context map[string]any
	}{
		{
			name:   "not found",
			err:    shared.NotFound("invoice", uuid.New()),
			status: http.StatusNotFound,
			code:   dto.ErrCodeNotFound,
		},
		{
			name:   "wrapped conflict",
			err:    fmt.Errorf("create: %w", shared.Conflict("invoice number %s already exists", "INV-1")),
			status: http.StatusConflict,
			code:   dto.ErrCodeAlreadyExists,
		},
		{
			name:   "validation",
			err:    shared.Validation("amount must be greater than 0"),
			status: http.StatusBadRequest,
			code:   dto.ErrCodeValidation,
		},
		{
			name:   "mismatch",
			err:    shared.Mismatch("student %s does not belong to school %s", "a", "b"),
			status: http.StatusBadRequest,
			code:   dto.ErrCodeMismatch,
		},
		{
			name:   "invalid state",
			err:    shared.NewDomainError(shared.CodeInvalidState, "invoice is cancelled"),
			status: http.StatusUnprocessableEntity,
			code:   dto.ErrCodeInvalidState,
		},
		{
			name:    "overpayment",
			err:     shared.NewOverpaymentError(decimal.RequireFromString("100"), decimal.RequireFromString("100.5")),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeOverpayment,
			context: map[string]any{"pending": "100.00", "requested": "100.50"},
		},
		{
			name:    "blocked transfer",
			err:     shared.NewDebtBlockedTransferError(decimal.RequireFromString("200")),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeDebtBlockedTransfer,
			context: map[string]any{"debt": "200.00"},
		},
		{
			name:   "unexpected",
			err:    errors.New("connection refused"),
			status: http.StatusInternalServerError,
			code:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/")
			c.Set(middleware.RequestIDContextKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			errInfo := testutil.AssertErrorResponse(t, w, tt.status, tt.code)
			assert.Equal(t, "req-1", errInfo["request_id"])
			if tt.context != nil {
				assert.Equal(t, tt.context, errInfo["context"])
			} else {
				assert.NotContains(t, errInfo, "context")
			}
			if tt.code == dto.ErrCodeInternal {
				assert.NotContains(t, errInfo["message"], "connection refused", "internal details are not leaked")
			}
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	c, w := newContext(http.MethodGet, "/")
	(&BaseHandler{}).HandleError(c, nil)
	assert.Zero(t, w.Body.Len())
}

func TestBindPage(t *testing.T) {
	tests := []struct {
		query string
		ok    bool
		skip  int
		limit int
	}{
		{"", true, 0, shared.DefaultPageLimit},
		{"skip=20&limit=5", true, 20, 5},
		{"limit=100", true, 0, 100},
		{"skip=-1", false, 0, 0},
		{"limit=0", false, 0, 0},
		{"limit=101", false, 0, 0},
		{"skip=x", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, w := newContext(http.MethodGet, "/?"+tt.query)
			page, ok := (&BaseHandler{}).bindPage(c)

			require.Equal(t, tt.ok, ok, w.Body.String())
			if tt.ok {
				assert.Equal(t, tt.skip, page.Skip)
				assert.Equal(t, tt.limit, page.Limit)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	type body struct {
		Name string `json:"name" binding:"required"`
	}

	t.Run("malformed", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		c.Request.Header.Set("Content-Type", "application/json")

		var b body
		assert.False(t, (&BaseHandler{}).bindJSON(c, &b))
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})

	t.Run("too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"abcdefghijklmnop"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 8)

		var b body
		assert.False(t, (&BaseHandler{}).bindJSON(c, &b))
		testutil.AssertErrorResponse(t, w, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge)
	})

	t.Run("missing field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		var b body
		assert.False(t, (&BaseHandler{}).bindJSON(c, &b))
		errInfo := testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.NotEmpty(t, errInfo["details"])
	})
}

func TestQueryBool(t *testing.T) {
	h := &BaseHandler{}
	for query, want := range map[string]*bool{"": nil, "is_active=true": ptr(true), "is_active=0": ptr(false)} {
		c, _ := newContext(http.MethodGet, "/?"+query)
		got, ok := h.queryBool(c, "is_active")
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	c, w := newContext(http.MethodGet, "/?is_active=maybe")
	_, ok := h.queryBool(c, "is_active")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func ptr[T any](v T) *T {
	return &v
}
