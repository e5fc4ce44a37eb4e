package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/interfaces/http/dto"
)

// AccountHandler serves account statements and debt
type AccountHandler struct {
	BaseHandler
	accounts *appaccount.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *appaccount.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// StudentDebtResponse is what a student owes to a school
// @Description Debt of a student, each invoice clamped at zero
type StudentDebtResponse struct {
	StudentID string `json:"student_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SchoolID  string `json:"school_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Debt      string `json:"debt" example:"700.00"`
}

// SchoolDebtResponse is the total owed to a school
// @Description Sum of the debts of every student of a school
type SchoolDebtResponse struct {
	SchoolID  string `json:"school_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	TotalDebt string `json:"total_debt" example:"1200.00"`
}

// SchoolStatement godoc
// @ID           getSchoolAccountStatus
//
//	@Summary		Get the account statement of a school
//	@Description	Totals invoiced, paid and pending over the whole school, active student count and one page of invoices with their payments. Served from a short-lived cache.
//	@Tags			accounts
//	@Produce		json
//	@Param			id		path		string	true	"School ID"	format(uuid)
//	@Param			skip	query		int		false	"Invoices to skip"	minimum(0)	default(0)
//	@Param			limit	query		int		false	"Invoices per page"	minimum(1)	maximum(100)	default(10)
//	@Success		200		{object}	APIResponse[account.SchoolStatement]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/accounts/schools/{id} [get]
func (h *AccountHandler) SchoolStatement(c *gin.Context) {
	schoolStatement(&h.BaseHandler, h.accounts, c)
}

// StudentStatement godoc
// @ID           getStudentAccountStatus
//
//	@Summary		Get the account statement of a student
//	@Description	Totals invoiced, paid and pending for the student and one page of invoices with their payments. Served from a short-lived cache.
//	@Tags			accounts
//	@Produce		json
//	@Param			id		path		string	true	"Student ID"	format(uuid)
//	@Param			skip	query		int		false	"Invoices to skip"	minimum(0)	default(0)
//	@Param			limit	query		int		false	"Invoices per page"	minimum(1)	maximum(100)	default(10)
//	@Success		200		{object}	APIResponse[account.StudentStatement]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/accounts/students/{id} [get]
func (h *AccountHandler) StudentStatement(c *gin.Context) {
	studentStatement(&h.BaseHandler, h.accounts, c)
}

// StudentDebt godoc
// @ID           getStudentDebt
//
//	@Summary		Get the debt of a student
//	@Description	Sum over the student's invoices of max(0, total - paid). 404 when the student does not belong to the school.
//	@Tags			accounts
//	@Produce		json
//	@Param			id			path		string	true	"Student ID"	format(uuid)
//	@Param			schoolId	path		string	true	"School ID"		format(uuid)
//	@Success		200			{object}	APIResponse[StudentDebtResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/accounts/students/{id}/debt/{schoolId} [get]
func (h *AccountHandler) StudentDebt(c *gin.Context) {
	studentID, ok := h.pathID(c, "id", "student")
	if !ok {
		return
	}
	schoolID, ok := h.pathID(c, "schoolId", "school")
	if !ok {
		return
	}

	debt, err := h.accounts.GetStudentDebt(c.Request.Context(), studentID, schoolID)
	if errors.Is(err, shared.ErrMismatch) {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, StudentDebtResponse{
		StudentID: studentID.String(),
		SchoolID:  schoolID.String(),
		Debt:      debt.String(),
	})
}

// SchoolTotalDebt godoc
// @ID           getSchoolTotalDebt
//
//	@Summary		Get the total debt of a school
//	@Description	Sum of the debt of every student of the school, active or not
//	@Tags			accounts
//	@Produce		json
//	@Param			id	path		string	true	"School ID"	format(uuid)
//	@Success		200	{object}	APIResponse[SchoolDebtResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/accounts/schools/{id}/total-debt [get]
func (h *AccountHandler) SchoolTotalDebt(c *gin.Context) {
	schoolID, ok := h.pathID(c, "id", "school")
	if !ok {
		return
	}

	total, err := h.accounts.GetSchoolTotalDebt(c.Request.Context(), schoolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SchoolDebtResponse{
		SchoolID:  schoolID.String(),
		TotalDebt: total.String(),
	})
}

func schoolStatement(h *BaseHandler, accounts *appaccount.AccountService, c *gin.Context) {
	id, ok := h.pathID(c, "id", "school")
	if !ok {
		return
	}
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	st, err := accounts.GetSchoolAccountStatus(c.Request.Context(), id, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

func studentStatement(h *BaseHandler, accounts *appaccount.AccountService, c *gin.Context) {
	id, ok := h.pathID(c, "id", "student")
	if !ok {
		return
	}
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	st, err := accounts.GetStudentAccountStatus(c.Request.Context(), id, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}
