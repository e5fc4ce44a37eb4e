package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/infrastructure/logger"
	"github.com/mattilda/backend/internal/interfaces/http/dto"
	"github.com/mattilda/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDContextKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessPage sends one page of items with its paging meta
func SuccessPage[T any](c *gin.Context, page shared.Page[T]) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(page.Items, page.Total, page.Skip, page.Limit))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// HandleError converts an error into the response envelope. Domain errors keep their
// message and map to their HTTP status; overpayment and blocked transfers also carry
// the amounts involved. Anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal,
			"An unexpected error occurred",
			requestID,
		))
		return
	}

	resp := dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID)
	resp.Error.Context = errorContext(err)
	c.JSON(dto.GetHTTPStatus(resp.Error.Code), resp)
}

func errorContext(err error) map[string]string {
	var overpay *shared.OverpaymentError
	if errors.As(err, &overpay) {
		return map[string]string{
			"pending":   overpay.Pending.StringFixed(2),
			"requested": overpay.Requested.StringFixed(2),
		}
	}
	var blocked *shared.DebtBlockedTransferError
	if errors.As(err, &blocked) {
		return map[string]string{"debt": blocked.Debt.StringFixed(2)}
	}
	return nil
}

// bindJSON binds the request body. Field errors become a validation response;
// a malformed body becomes ERR_INVALID_JSON.
func (h *BaseHandler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return false
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body too large")
		return false
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
	return false
}

// bindPage reads skip and limit from the query string
func (h *BaseHandler) bindPage(c *gin.Context) (shared.PageRequest, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			middleware.HandleValidationError(c, err)
		} else {
			h.BadRequest(c, "Invalid pagination parameters")
		}
		return shared.PageRequest{}, false
	}
	page, err := q.PageRequest()
	if err != nil {
		h.HandleError(c, err)
		return shared.PageRequest{}, false
	}
	return page, true
}

// pathID parses a UUID path parameter
func (h *BaseHandler) pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional UUID query parameter
func (h *BaseHandler) queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

// queryBool parses an optional boolean query parameter
func (h *BaseHandler) queryBool(c *gin.Context, name string) (*bool, bool) {
	switch c.Query(name) {
	case "":
		return nil, true
	case "true", "1":
		v := true
		return &v, true
	case "false", "0":
		v := false
		return &v, true
	default:
		h.BadRequest(c, "Invalid "+name+" value, expected true or false")
		return nil, false
	}
}
