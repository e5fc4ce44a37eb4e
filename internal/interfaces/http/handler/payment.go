package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/mattilda/backend/internal/application/billing"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payments registered against an invoice
type PaymentHandler struct {
	BaseHandler
	payments *appbilling.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentRequest represents a payment against the invoice in the path
// @Description Request body for registering a payment. invoice_id is optional; when present it must equal the path ID.
type CreatePaymentRequest struct {
	InvoiceID        string          `json:"invoice_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440010"`
	Amount           decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"500.00"`
	PaymentMethod    string          `json:"payment_method" binding:"max=50" example:"transfer"`
	PaymentReference string          `json:"payment_reference" binding:"max=100" example:"SPEI-778812"`
	Notes            string          `json:"notes" binding:"max=500" example:"First installment"`
	PaymentDate      *time.Time      `json:"payment_date" example:"2025-01-15T10:00:00Z"`
}

// PaymentResponse represents a payment in API responses
// @Description Payment details
type PaymentResponse struct {
	ID               string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440020"`
	InvoiceID        string    `json:"invoice_id" example:"550e8400-e29b-41d4-a716-446655440010"`
	SchoolID         string    `json:"school_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	StudentID        string    `json:"student_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Amount           string    `json:"amount" example:"500.00"`
	PaymentMethod    string    `json:"payment_method,omitempty" example:"transfer"`
	PaymentReference string    `json:"payment_reference,omitempty" example:"SPEI-778812"`
	Notes            string    `json:"notes,omitempty" example:"First installment"`
	PaymentDate      time.Time `json:"payment_date"`
	CreatedAt        time.Time `json:"created_at"`
}

func toPaymentResponse(p billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID.String(),
		InvoiceID:        p.InvoiceID.String(),
		SchoolID:         p.SchoolID.String(),
		StudentID:        p.StudentID.String(),
		Amount:           p.Amount.String(),
		PaymentMethod:    p.PaymentMethod,
		PaymentReference: p.PaymentReference,
		Notes:            p.Notes,
		PaymentDate:      p.PaymentDate,
		CreatedAt:        p.CreatedAt,
	}
}

// Create godoc
// @ID           createPayment
//
//	@Summary		Register a payment
//	@Description	Admitted only if the amount does not exceed the invoice's pending balance; concurrent payments on one invoice are serialized. The invoice status follows the paid sum.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Invoice ID"	format(uuid)
//	@Param			request	body		CreatePaymentRequest	true	"Payment request"
//	@Success		201		{object}	APIResponse[PaymentResponse]
//	@Failure		400		{object}	ErrorResponse	"Validation error, overpayment or invoice_id mismatch"
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse	"Invoice is cancelled"
//	@Router			/invoices/{id}/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	invoiceID, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.InvoiceID != "" && req.InvoiceID != invoiceID.String() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeMismatch, "invoice_id in body does not match the invoice in the path")
		return
	}

	payment, err := h.payments.CreatePayment(c.Request.Context(), appbilling.CreatePaymentRequest{
		InvoiceID: invoiceID,
		Amount:    valueobject.FromDecimal(req.Amount),
		Metadata: billing.PaymentMetadata{
			PaymentMethod:    req.PaymentMethod,
			PaymentReference: req.PaymentReference,
			Notes:            req.Notes,
			PaymentDate:      req.PaymentDate,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPaymentResponse(*payment))
}

// List godoc
// @ID           listInvoicePayments
//
//	@Summary		List the payments of an invoice
//	@Description	Most recent payment_date first
//	@Tags			payments
//	@Produce		json
//	@Param			id		path		string	true	"Invoice ID"	format(uuid)
//	@Param			skip	query		int		false	"Records to skip"	minimum(0)	default(0)
//	@Param			limit	query		int		false	"Page size"			minimum(1)	maximum(100)	default(10)
//	@Success		200		{object}	APIResponse[[]PaymentResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/invoices/{id}/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	invoiceID, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	result, err := h.payments.ListPayments(c.Request.Context(), invoiceID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	SuccessPage(c, shared.MapPage(result, toPaymentResponse))
}
