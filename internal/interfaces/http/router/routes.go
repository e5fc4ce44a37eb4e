package router

import (
	"github.com/mattilda/backend/internal/interfaces/http/handler"
)

// Handlers groups the HTTP handlers mounted under the API prefix
type Handlers struct {
	Schools  *handler.SchoolHandler
	Students *handler.StudentHandler
	Invoices *handler.InvoiceHandler
	Payments *handler.PaymentHandler
	Accounts *handler.AccountHandler
}

// Groups builds the domain groups of the billing API
func Groups(h Handlers) []RouteRegistrar {
	schools := NewDomainGroup("schools", "/schools")
	schools.POST("", h.Schools.Create)
	schools.GET("", h.Schools.List)
	schools.GET("/count", h.Schools.Count)
	schools.GET("/:id", h.Schools.Get)
	schools.PUT("/:id", h.Schools.Update)
	schools.DELETE("/:id", h.Schools.Delete)
	schools.GET("/:id/statement", h.Schools.Statement)

	students := NewDomainGroup("students", "/students")
	students.POST("", h.Students.Create)
	students.GET("", h.Students.List)
	students.GET("/count", h.Students.Count)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/statement", h.Students.Statement)

	invoices := NewDomainGroup("invoices", "/invoices")
	invoices.POST("", h.Invoices.Create)
	invoices.GET("", h.Invoices.List)
	invoices.GET("/count", h.Invoices.Count)
	invoices.GET("/:id", h.Invoices.Get)
	invoices.PUT("/:id", h.Invoices.Update)
	invoices.DELETE("/:id", h.Invoices.Delete)
	invoices.Group("payments", "/:id/payments").
		POST("", h.Payments.Create).
		GET("", h.Payments.List)

	accounts := NewDomainGroup("accounts", "/accounts")
	accounts.Group("school-accounts", "/schools").
		GET("/:id", h.Accounts.SchoolStatement).
		GET("/:id/total-debt", h.Accounts.SchoolTotalDebt)
	accounts.Group("student-accounts", "/students").
		GET("/:id", h.Accounts.StudentStatement).
		GET("/:id/debt/:schoolId", h.Accounts.StudentDebt)

	return []RouteRegistrar{schools, students, invoices, accounts}
}

// RegisterAPI mounts the billing API on r
func RegisterAPI(r *Router, h Handlers) {
	r.Register(Groups(h)...)
	r.Setup()
}
