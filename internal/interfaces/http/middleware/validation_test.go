package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mattilda/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFormatValidationErrors(t *testing.T) {
	type enrollRequest struct {
		Email string `json:"email" binding:"required,email"`
		Grade int    `json:"grade" binding:"required,min=1"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req enrollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		w := postJSON(router, `{"email": "invalid", "grade": -1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
		assert.Equal(t, "grade", resp.Error.Details[1].Field)
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		w := postJSON(router, `{"email": "ana@example.com", "grade": 3}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed JSON has no field details", func(t *testing.T) {
		w := postJSON(router, `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Error.Details)
		assert.Contains(t, resp.Error.Message, "Invalid request")
	})
}

func TestMoneyValidation(t *testing.T) {
	type paymentRequest struct {
		Amount decimal.Decimal `json:"amount" binding:"money"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"amount": req.Amount.StringFixed(2)})
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"number", `{"amount": 150.5}`, http.StatusOK},
		{"string", `{"amount": "99.99"}`, http.StatusOK},
		{"trailing zeros", `{"amount": "10.500"}`, http.StatusOK},
		{"missing", `{}`, http.StatusBadRequest},
		{"zero", `{"amount": 0}`, http.StatusBadRequest},
		{"negative", `{"amount": "-5"}`, http.StatusBadRequest},
		{"three places", `{"amount": "1.005"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "at most 2 decimal places")
			}
		})
	}
}

func TestMoneyValidation_OptionalPointer(t *testing.T) {
	type updateRequest struct {
		Amount *decimal.Decimal `json:"amount" binding:"omitempty,money"`
	}

	SetupValidator()
	v := binding.Validator

	assert.NoError(t, v.ValidateStruct(&updateRequest{}))

	bad := decimal.RequireFromString("-1")
	assert.Error(t, v.ValidateStruct(&updateRequest{Amount: &bad}))

	good := decimal.RequireFromString("12.30")
	assert.NoError(t, v.ValidateStruct(&updateRequest{Amount: &good}))
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Required string `validate:"required"`
		Email    string `validate:"email"`
		Min      string `validate:"min=5"`
		Len      string `validate:"len=5"`
		UUID     string `validate:"uuid"`
		OneOf    string `validate:"oneof=a b c"`
		GT       int    `validate:"gt=0"`
	}

	v := validator.New()
	err := v.Struct(sample{Email: "invalid", Min: "ab", Len: "ab", UUID: "invalid", OneOf: "d"})
	require.Error(t, err)

	want := map[string]string{
		"Required": "This field is required",
		"Email":    "Invalid email format",
		"Min":      "Must be at least 5 characters",
		"Len":      "Must be exactly 5 characters",
		"UUID":     "Invalid UUID format",
		"OneOf":    "Must be one of: a b c",
		"GT":       "Must be greater than 0",
	}

	validationErrs := err.(validator.ValidationErrors)
	require.Len(t, validationErrs, len(want))
	for _, e := range validationErrs {
		assert.Equal(t, want[e.Field()], getValidationMessage(e), e.Field())
	}
}

func TestHandleValidationError_RequestID(t *testing.T) {
	type input struct {
		Name string `json:"name" binding:"required"`
	}

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var in input
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestAmountValidation(t *testing.T) {
	type invoiceRequest struct {
		Total *decimal.Decimal `json:"total" binding:"required,amount"`
	}

	SetupValidator()
	v := binding.Validator

	zero := decimal.Zero
	assert.NoError(t, v.ValidateStruct(&invoiceRequest{Total: &zero}))

	total := decimal.RequireFromString("1500.00")
	assert.NoError(t, v.ValidateStruct(&invoiceRequest{Total: &total}))

	negative := decimal.RequireFromString("-0.01")
	assert.Error(t, v.ValidateStruct(&invoiceRequest{Total: &negative}))

	fine := decimal.RequireFromString("0.001")
	assert.Error(t, v.ValidateStruct(&invoiceRequest{Total: &fine}))

	assert.Error(t, v.ValidateStruct(&invoiceRequest{}), "missing total")
}
