package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appaccount "github.com/mattilda/backend/internal/application/account"
	"github.com/mattilda/backend/internal/application/enrollment"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
)

// SchoolHandler handles school endpoints
type SchoolHandler struct {
	BaseHandler
	schools  *enrollment.SchoolService
	accounts *appaccount.AccountService
}

// NewSchoolHandler creates a new SchoolHandler
func NewSchoolHandler(schools *enrollment.SchoolService, accounts *appaccount.AccountService) *SchoolHandler {
	return &SchoolHandler{
		schools:  schools,
		accounts: accounts,
	}
}

// CreateSchoolRequest represents a request to create a school
// @Description Request body for creating a school
type CreateSchoolRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Colegio Mattilda"`
	Address string `json:"address" binding:"max=500" example:"Av. Reforma 100, CDMX"`
	Phone   string `json:"phone" binding:"max=50" example:"+52 55 1234 5678"`
	Email   string `json:"email" binding:"omitempty,email,max=200" example:"admin@colegio.mx"`
}

// UpdateSchoolRequest represents a partial update of a school
// @Description Request body for updating a school; omitted fields are kept
type UpdateSchoolRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200" example:"Colegio Mattilda Norte"`
	Address  *string `json:"address" binding:"omitempty,max=500" example:"Av. Insurgentes 200"`
	Phone    *string `json:"phone" binding:"omitempty,max=50" example:"+52 55 8765 4321"`
	Email    *string `json:"email" binding:"omitempty,email,max=200" example:"contacto@colegio.mx"`
	IsActive *bool   `json:"is_active" example:"true"`
}

// SchoolResponse represents a school in API responses
// @Description School details
type SchoolResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string    `json:"name" example:"Colegio Mattilda"`
	Address   string    `json:"address,omitempty" example:"Av. Reforma 100, CDMX"`
	Phone     string    `json:"phone,omitempty" example:"+52 55 1234 5678"`
	Email     string    `json:"email,omitempty" example:"admin@colegio.mx"`
	IsActive  bool      `json:"is_active" example:"true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSchoolResponse(s school.School) SchoolResponse {
	return SchoolResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create godoc
// @ID           createSchool
//
//	@Summary		Create a school
//	@Tags			schools
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSchoolRequest	true	"School creation request"
//	@Success		201		{object}	APIResponse[SchoolResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var req CreateSchoolRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sc, err := h.schools.Create(c.Request.Context(), enrollment.SchoolInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toSchoolResponse(*sc))
}

// List godoc
// @ID           listSchools
//
//	@Summary		List schools
//	@Description	List schools ordered by name with skip/limit pagination
//	@Tags			schools
//	@Produce		json
//	@Param			skip		query		int		false	"Records to skip"	minimum(0)	default(0)
//	@Param			limit		query		int		false	"Page size"			minimum(1)	maximum(100)	default(10)
//	@Param			is_active	query		bool	false	"Filter by active flag"
//	@Success		200			{object}	APIResponse[[]SchoolResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	result, err := h.schools.List(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	SuccessPage(c, shared.MapPage(result, toSchoolResponse))
}

// Count godoc
// @ID           countSchools
//
//	@Summary		Count schools
//	@Tags			schools
//	@Produce		json
//	@Param			is_active	query		bool	false	"Filter by active flag"
//	@Success		200			{object}	APIResponse[CountData]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/schools/count [get]
func (h *SchoolHandler) Count(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.schools.Count(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

func (h *SchoolHandler) filter(c *gin.Context) (school.Filter, bool) {
	active, ok := h.queryBool(c, "is_active")
	return school.Filter{IsActive: active}, ok
}

// Get godoc
// @ID           getSchool
//
//	@Summary		Get a school
//	@Tags			schools
//	@Produce		json
//	@Param			id	path		string	true	"School ID"	format(uuid)
//	@Success		200	{object}	APIResponse[SchoolResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/schools/{id} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "school")
	if !ok {
		return
	}

	sc, err := h.schools.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSchoolResponse(*sc))
}

// Update godoc
// @ID           updateSchool
//
//	@Summary		Update a school
//	@Tags			schools
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"School ID"	format(uuid)
//	@Param			request	body		UpdateSchoolRequest	true	"Fields to change"
//	@Success		200		{object}	APIResponse[SchoolResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/schools/{id} [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", "school")
	if !ok {
		return
	}
	var req UpdateSchoolRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sc, err := h.schools.Update(c.Request.Context(), id, enrollment.UpdateSchoolRequest{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSchoolResponse(*sc))
}

// Delete godoc
// @ID           deleteSchool
//
//	@Summary		Delete a school
//	@Description	Delete a school together with its students, invoices and payments
//	@Tags			schools
//	@Param			id	path	string	true	"School ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/schools/{id} [delete]
func (h *SchoolHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", "school")
	if !ok {
		return
	}

	if err := h.schools.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Statement godoc
// @ID           getSchoolStatementAlias
//
//	@Summary		Get the account statement of a school
//	@Description	Same as GET /accounts/schools/{id}
//	@Tags			schools
//	@Produce		json
//	@Param			id		path		string	true	"School ID"	format(uuid)
//	@Param			skip	query		int		false	"Invoices to skip"	minimum(0)	default(0)
//	@Param			limit	query		int		false	"Invoices per page"	minimum(1)	maximum(100)	default(10)
//	@Success		200		{object}	APIResponse[account.SchoolStatement]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/schools/{id}/statement [get]
func (h *SchoolHandler) Statement(c *gin.Context) {
	schoolStatement(&h.BaseHandler, h.accounts, c)
}
