package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/mattilda/backend/internal/application/billing"
	"github.com/mattilda/backend/internal/domain/account"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoices *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// CreateInvoiceRequest represents a request to bill a student
// @Description Request body for creating an invoice. school_id is optional and must match the student's school.
type CreateInvoiceRequest struct {
	StudentID     string           `json:"student_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	SchoolID      string           `json:"school_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	InvoiceNumber string           `json:"invoice_number" binding:"required,min=1,max=50" example:"INV-2025-0001"`
	TotalAmount   *decimal.Decimal `json:"total_amount" binding:"required,amount" swaggertype:"string" example:"1000.00"`
	Description   string           `json:"description" binding:"max=500" example:"Tuition January"`
	IssueDate     string           `json:"issue_date" binding:"omitempty,datetime=2006-01-02" example:"2025-01-01"`
	DueDate       string           `json:"due_date" binding:"required,datetime=2006-01-02" example:"2025-01-31"`
}

// UpdateInvoiceRequest represents a partial update of an invoice
// @Description Request body for updating an invoice. status only accepts "cancelled"; payments drive every other status.
type UpdateInvoiceRequest struct {
	StudentID     *string          `json:"student_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	InvoiceNumber *string          `json:"invoice_number" binding:"omitempty,min=1,max=50" example:"INV-2025-0001"`
	TotalAmount   *decimal.Decimal `json:"total_amount" binding:"omitempty,amount" swaggertype:"string" example:"1200.00"`
	Description   *string          `json:"description" binding:"omitempty,max=500" example:"Tuition January (revised)"`
	IssueDate     *string          `json:"issue_date" binding:"omitempty,datetime=2006-01-02" example:"2025-01-01"`
	DueDate       *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2025-02-15"`
	Status        *string          `json:"status" binding:"omitempty,oneof=pending partial paid cancelled" example:"cancelled"`
}

// InvoiceResponse represents an invoice in API responses
// @Description Invoice details; payments are included when fetching a single invoice
type InvoiceResponse struct {
	ID            string            `json:"id" example:"550e8400-e29b-41d4-a716-446655440010"`
	SchoolID      string            `json:"school_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	StudentID     string            `json:"student_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	InvoiceNumber string            `json:"invoice_number" example:"INV-2025-0001"`
	TotalAmount   string            `json:"total_amount" example:"1000.00"`
	Description   string            `json:"description,omitempty" example:"Tuition January"`
	IssueDate     string            `json:"issue_date" example:"2025-01-01"`
	DueDate       string            `json:"due_date" example:"2025-01-31"`
	Status        string            `json:"status" example:"pending" enums:"pending,partial,paid,cancelled"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
}

func toInvoiceResponse(inv billing.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		SchoolID:      inv.SchoolID.String(),
		StudentID:     inv.StudentID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		TotalAmount:   inv.TotalAmount.String(),
		Description:   inv.Description,
		IssueDate:     inv.IssueDate.Format(account.DateLayout),
		DueDate:       inv.DueDate.Format(account.DateLayout),
		Status:        inv.Status.String(),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}

// Create godoc
// @ID           createInvoice
//
//	@Summary		Create an invoice
//	@Description	Invoice numbers are unique per school. The status starts as pending, or paid for a zero total.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateInvoiceRequest	true	"Invoice creation request"
//	@Success		201		{object}	APIResponse[InvoiceResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appReq := appbilling.CreateInvoiceRequest{
		StudentID:     uuid.MustParse(req.StudentID),
		InvoiceNumber: req.InvoiceNumber,
		TotalAmount:   valueobject.FromDecimal(*req.TotalAmount),
		Description:   req.Description,
		DueDate:       *parseDate(req.DueDate),
	}
	if req.SchoolID != "" {
		schoolID := uuid.MustParse(req.SchoolID)
		appReq.SchoolID = &schoolID
	}
	if issue := parseDate(req.IssueDate); issue != nil {
		appReq.IssueDate = *issue
	}

	inv, err := h.invoices.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toInvoiceResponse(*inv))
}

// List godoc
// @ID           listInvoices
//
//	@Summary		List invoices
//	@Description	Newest first
//	@Tags			invoices
//	@Produce		json
//	@Param			student_id	query		string	false	"Filter by student"	format(uuid)
//	@Param			school_id	query		string	false	"Filter by school"	format(uuid)
//	@Param			status		query		string	false	"Filter by status"	Enums(pending, partial, paid, cancelled)
//	@Param			skip		query		int		false	"Records to skip"	minimum(0)	default(0)
//	@Param			limit		query		int		false	"Page size"			minimum(1)	maximum(100)	default(10)
//	@Success		200			{object}	APIResponse[[]InvoiceResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	result, err := h.invoices.List(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	SuccessPage(c, shared.MapPage(result, toInvoiceResponse))
}

// Count godoc
// @ID           countInvoices
//
//	@Summary		Count invoices
//	@Tags			invoices
//	@Produce		json
//	@Param			student_id	query		string	false	"Filter by student"	format(uuid)
//	@Param			school_id	query		string	false	"Filter by school"	format(uuid)
//	@Param			status		query		string	false	"Filter by status"	Enums(pending, partial, paid, cancelled)
//	@Success		200			{object}	APIResponse[CountData]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/invoices/count [get]
func (h *InvoiceHandler) Count(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.invoices.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

func (h *InvoiceHandler) filter(c *gin.Context) (billing.InvoiceFilter, bool) {
	var filter billing.InvoiceFilter
	var ok bool
	if filter.StudentID, ok = h.queryUUID(c, "student_id"); !ok {
		return filter, false
	}
	if filter.SchoolID, ok = h.queryUUID(c, "school_id"); !ok {
		return filter, false
	}
	if raw := c.Query("status"); raw != "" {
		status := billing.InvoiceStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status, expected one of: pending partial paid cancelled")
			return filter, false
		}
		filter.Status = &status
	}
	return filter, true
}

// Get godoc
// @ID           getInvoice
//
//	@Summary		Get an invoice with its payments
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		string	true	"Invoice ID"	format(uuid)
//	@Success		200	{object}	APIResponse[InvoiceResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toInvoiceResponse(*inv))
}

// Update godoc
// @ID           updateInvoice
//
//	@Summary		Update an invoice
//	@Description	The total may not drop below the amount already paid. The status is re-derived from the new total and the payments.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Invoice ID"	format(uuid)
//	@Param			request	body		UpdateInvoiceRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[InvoiceResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}
	var req UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	update := appbilling.UpdateInvoiceRequest{
		InvoiceNumber: req.InvoiceNumber,
		Description:   req.Description,
	}
	if req.StudentID != nil {
		studentID := uuid.MustParse(*req.StudentID)
		update.StudentID = &studentID
	}
	if req.TotalAmount != nil {
		total := valueobject.FromDecimal(*req.TotalAmount)
		update.TotalAmount = &total
	}
	if req.IssueDate != nil {
		update.IssueDate = parseDate(*req.IssueDate)
	}
	if req.DueDate != nil {
		update.DueDate = parseDate(*req.DueDate)
	}
	if req.Status != nil {
		status := billing.InvoiceStatus(*req.Status)
		update.Status = &status
	}

	inv, err := h.invoices.Update(c.Request.Context(), id, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toInvoiceResponse(*inv))
}

// Delete godoc
// @ID           deleteInvoice
//
//	@Summary		Delete an invoice
//	@Description	Delete an invoice together with its payments
//	@Tags			invoices
//	@Param			id	path	string	true	"Invoice ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
