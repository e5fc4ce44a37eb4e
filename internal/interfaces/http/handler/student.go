package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/mattilda/backend/internal/application/enrollment"
	"github.com/mattilda/backend/internal/domain/account"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/student"
)

// StudentHandler handles student endpoints
type StudentHandler struct {
	BaseHandler
	students *enrollment.StudentService
	accounts *appaccount.AccountService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(students *enrollment.StudentService, accounts *appaccount.AccountService) *StudentHandler {
	return &StudentHandler{
		students: students,
		accounts: accounts,
	}
}

// CreateStudentRequest represents a request to enroll a student
// @Description Request body for enrolling a student in a school
type CreateStudentRequest struct {
	SchoolID    string `json:"school_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	FirstName   string `json:"first_name" binding:"required,min=1,max=100" example:"Ana"`
	LastName    string `json:"last_name" binding:"required,min=1,max=100" example:"García"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"ana.garcia@example.com"`
	StudentCode string `json:"student_code" binding:"max=50" example:"A-2025-001"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"2012-05-17"`
}

// UpdateStudentRequest represents a partial update of a student.
// Changing school_id is refused while the student has pending debt.
// @Description Request body for updating a student; omitted fields are kept
type UpdateStudentRequest struct {
	SchoolID    *string `json:"school_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100" example:"Ana María"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100" example:"García"`
	Email       *string `json:"email" binding:"omitempty,email,max=200" example:"ana.maria@example.com"`
	StudentCode *string `json:"student_code" binding:"omitempty,max=50" example:"A-2025-002"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"2012-05-17"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

// StudentResponse represents a student in API responses
// @Description Student details
type StudentResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SchoolID    string    `json:"school_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	FirstName   string    `json:"first_name" example:"Ana"`
	LastName    string    `json:"last_name" example:"García"`
	FullName    string    `json:"full_name" example:"Ana García"`
	Email       string    `json:"email,omitempty" example:"ana.garcia@example.com"`
	StudentCode string    `json:"student_code,omitempty" example:"A-2025-001"`
	DateOfBirth string    `json:"date_of_birth,omitempty" example:"2012-05-17"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toStudentResponse(s student.Student) StudentResponse {
	resp := StudentResponse{
		ID:          s.ID.String(),
		SchoolID:    s.SchoolID.String(),
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		FullName:    s.FullName(),
		Email:       s.Email,
		StudentCode: s.StudentCode,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.DateOfBirth != nil {
		resp.DateOfBirth = s.DateOfBirth.Format(account.DateLayout)
	}
	return resp
}

// parseDate parses a calendar date already checked by the datetime binding
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(account.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// Create godoc
// @ID           createStudent
//
//	@Summary		Enroll a student
//	@Description	Email is unique across schools; student_code is unique within the school
//	@Tags			students
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateStudentRequest	true	"Student creation request"
//	@Success		201		{object}	APIResponse[StudentResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req CreateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	st, err := h.students.Create(c.Request.Context(), enrollment.CreateStudentRequest{
		SchoolID: uuid.MustParse(req.SchoolID),
		Profile: student.Profile{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			StudentCode: req.StudentCode,
			DateOfBirth: parseDate(req.DateOfBirth),
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toStudentResponse(*st))
}

// List godoc
// @ID           listStudents
//
//	@Summary		List students
//	@Tags			students
//	@Produce		json
//	@Param			school_id	query		string	false	"Filter by school"	format(uuid)
//	@Param			is_active	query		bool	false	"Filter by active flag"
//	@Param			skip		query		int		false	"Records to skip"	minimum(0)	default(0)
//	@Param			limit		query		int		false	"Page size"			minimum(1)	maximum(100)	default(10)
//	@Success		200			{object}	APIResponse[[]StudentResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	result, err := h.students.List(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	SuccessPage(c, shared.MapPage(result, toStudentResponse))
}

// Count godoc
// @ID           countStudents
//
//	@Summary		Count students
//	@Tags			students
//	@Produce		json
//	@Param			school_id	query		string	false	"Filter by school"	format(uuid)
//	@Param			is_active	query		bool	false	"Filter by active flag"
//	@Success		200			{object}	APIResponse[CountData]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/students/count [get]
func (h *StudentHandler) Count(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.students.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

func (h *StudentHandler) filter(c *gin.Context) (student.Filter, bool) {
	schoolID, ok := h.queryUUID(c, "school_id")
	if !ok {
		return student.Filter{}, false
	}
	active, ok := h.queryBool(c, "is_active")
	if !ok {
		return student.Filter{}, false
	}
	return student.Filter{SchoolID: schoolID, IsActive: active}, true
}

// Get godoc
// @ID           getStudent
//
//	@Summary		Get a student
//	@Tags			students
//	@Produce		json
//	@Param			id	path		string	true	"Student ID"	format(uuid)
//	@Success		200	{object}	APIResponse[StudentResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "student")
	if !ok {
		return
	}

	st, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(*st))
}

// Update godoc
// @ID           updateStudent
//
//	@Summary		Update a student
//	@Description	Moving a student to another school fails with DEBT_BLOCKED_TRANSFER while invoiced exceeds paid
//	@Tags			students
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Student ID"	format(uuid)
//	@Param			request	body		UpdateStudentRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[StudentResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "student")
	if !ok {
		return
	}
	var req UpdateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	update := enrollment.UpdateStudentRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		StudentCode: req.StudentCode,
		IsActive:    req.IsActive,
	}
	if req.SchoolID != nil {
		schoolID := uuid.MustParse(*req.SchoolID)
		update.SchoolID = &schoolID
	}
	if req.DateOfBirth != nil {
		update.DateOfBirth = parseDate(*req.DateOfBirth)
	}

	st, err := h.students.Update(c.Request.Context(), id, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(*st))
}

// Delete godoc
// @ID           deleteStudent
//
//	@Summary		Delete a student
//	@Description	Delete a student together with its invoices and payments
//	@Tags			students
//	@Param			id	path	string	true	"Student ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "student")
	if !ok {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Statement godoc
// @ID           getStudentStatementAlias
//
//	@Summary		Get the account statement of a student
//	@Description	Same as GET /accounts/students/{id}
//	@Tags			students
//	@Produce		json
//	@Param			id		path		string	true	"Student ID"	format(uuid)
//	@Param			skip	query		int		false	"Invoices to skip"	minimum(0)	default(0)
//	@Param			limit	query		int		false	"Invoices per page"	minimum(1)	maximum(100)	default(10)
//	@Success		200		{object}	APIResponse[account.StudentStatement]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/students/{id}/statement [get]
func (h *StudentHandler) Statement(c *gin.Context) {
	studentStatement(&h.BaseHandler, h.accounts, c)
}
