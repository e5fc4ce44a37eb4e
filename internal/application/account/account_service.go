package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/account"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AccountService computes statements and debt for schools and students.
// Totals come from direct SUM aggregates over the denormalized school_id and
// student_id columns, never from per-invoice loops.
type AccountService struct {
	schools  school.Repository
	students student.Repository
	invoices billing.InvoiceRepository
	payments billing.PaymentRepository
	cache    *StatementCache
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	schools school.Repository,
	students student.Repository,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	cache *StatementCache,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewStatementCache(nil, logger)
	}
	return &AccountService{
		schools:  schools,
		students: students,
		invoices: invoices,
		payments: payments,
		cache:    cache,
		logger:   logger,
	}
}

// GetSchoolAccountStatus returns the statement of a school, served from cache when possible
func (s *AccountService) GetSchoolAccountStatus(ctx context.Context, schoolID uuid.UUID, page shared.PageRequest) (*account.SchoolStatement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "school_statement")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSchoolID, schoolID.String(),
		"skip", page.Skip,
		"limit", page.Limit,
	)

	if cached, ok := s.cache.GetSchool(ctx, schoolID, page); ok {
		telemetry.SetAttribute(span, telemetry.SpanAttrCacheHit, true)
		return cached, nil
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCacheHit, false)

	var st *account.SchoolStatement
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationSchoolStatement, nil), func(c context.Context) {
		st, err = s.computeSchoolStatement(c, schoolID, page)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cache.SetSchool(ctx, st, page)
	return st, nil
}

func (s *AccountService) computeSchoolStatement(ctx context.Context, schoolID uuid.UUID, page shared.PageRequest) (*account.SchoolStatement, error) {
	sc, err := s.schools.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	invoiceScope := billing.InvoiceFilter{SchoolID: &schoolID}
	paymentScope := billing.PaymentFilter{SchoolID: &schoolID}

	totals, err := s.totals(ctx, invoiceScope, paymentScope)
	if err != nil {
		return nil, err
	}

	active := true
	students, err := s.students.Count(ctx, student.Filter{SchoolID: &schoolID, IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("count active students: %w", err)
	}

	invoices, total, err := s.statementInvoices(ctx, invoiceScope, page)
	if err != nil {
		return nil, err
	}

	return &account.SchoolStatement{
		SchoolID:      sc.ID,
		SchoolName:    sc.Name,
		TotalStudents: students,
		Totals:        totals,
		TotalInvoices: total,
		Invoices:      invoices,
		Skip:          page.Skip,
		Limit:         page.Limit,
	}, nil
}

// GetStudentAccountStatus returns the statement of a student, served from cache when possible
func (s *AccountService) GetStudentAccountStatus(ctx context.Context, studentID uuid.UUID, page shared.PageRequest) (*account.StudentStatement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "student_statement")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrStudentID, studentID.String(),
		"skip", page.Skip,
		"limit", page.Limit,
	)

	if cached, ok := s.cache.GetStudent(ctx, studentID, page); ok {
		telemetry.SetAttribute(span, telemetry.SpanAttrCacheHit, true)
		return cached, nil
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCacheHit, false)

	st, err := s.computeStudentStatement(ctx, studentID, page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.cache.SetStudent(ctx, st, page)
	return st, nil
}

func (s *AccountService) computeStudentStatement(ctx context.Context, studentID uuid.UUID, page shared.PageRequest) (*account.StudentStatement, error) {
	st, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sc, err := s.schools.FindByID(ctx, st.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("load school of student %s: %w", studentID, err)
	}

	invoiceScope := billing.InvoiceFilter{StudentID: &studentID}
	paymentScope := billing.PaymentFilter{StudentID: &studentID}

	totals, err := s.totals(ctx, invoiceScope, paymentScope)
	if err != nil {
		return nil, err
	}

	invoices, total, err := s.statementInvoices(ctx, invoiceScope, page)
	if err != nil {
		return nil, err
	}

	return &account.StudentStatement{
		StudentID:     st.ID,
		StudentName:   st.FullName(),
		SchoolID:      sc.ID,
		SchoolName:    sc.Name,
		Totals:        totals,
		TotalInvoices: total,
		Invoices:      invoices,
		Skip:          page.Skip,
		Limit:         page.Limit,
	}, nil
}

func (s *AccountService) totals(ctx context.Context, invoices billing.InvoiceFilter, payments billing.PaymentFilter) (account.Totals, error) {
	invoiced, err := s.invoices.SumTotal(ctx, invoices)
	if err != nil {
		return account.Totals{}, fmt.Errorf("sum invoiced: %w", err)
	}
	paid, err := s.payments.SumAmount(ctx, payments)
	if err != nil {
		return account.Totals{}, fmt.Errorf("sum paid: %w", err)
	}
	return account.NewTotals(invoiced, paid), nil
}

func (s *AccountService) statementInvoices(ctx context.Context, filter billing.InvoiceFilter, page shared.PageRequest) ([]account.InvoiceLine, int64, error) {
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	invoices, err := s.invoices.ListForStatement(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list statement invoices: %w", err)
	}
	return account.NewInvoiceLines(invoices), total, nil
}

// GetStudentDebt returns what a student owes, clamping each invoice's pending amount at zero.
// The student must belong to schoolID.
func (s *AccountService) GetStudentDebt(ctx context.Context, studentID, schoolID uuid.UUID) (valueobject.Money, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "student_debt")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrStudentID, studentID.String(),
		telemetry.SpanAttrSchoolID, schoolID.String(),
	)

	st, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return valueobject.Zero(), err
	}
	if st.SchoolID != schoolID {
		err := shared.Mismatch("student %s does not belong to school %s", studentID, schoolID)
		telemetry.RecordError(span, err)
		return valueobject.Zero(), err
	}

	return s.studentDebt(ctx, studentID)
}

func (s *AccountService) studentDebt(ctx context.Context, studentID uuid.UUID) (valueobject.Money, error) {
	balances, err := s.invoices.BalancesByStudent(ctx, studentID)
	if err != nil {
		return valueobject.Zero(), fmt.Errorf("load invoice balances: %w", err)
	}
	return account.ClampedDebt(balances), nil
}

// GetSchoolTotalDebt sums GetStudentDebt over every student of the school, active or not
func (s *AccountService) GetSchoolTotalDebt(ctx context.Context, schoolID uuid.UUID) (valueobject.Money, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "school_total_debt")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSchoolID, schoolID.String())

	exists, err := s.schools.Exists(ctx, schoolID)
	if err != nil {
		telemetry.RecordError(span, err)
		return valueobject.Zero(), err
	}
	if !exists {
		return valueobject.Zero(), shared.NotFound("school", schoolID)
	}

	studentIDs, err := s.students.ListIDsBySchool(ctx, schoolID)
	if err != nil {
		telemetry.RecordError(span, err)
		return valueobject.Zero(), fmt.Errorf("list students: %w", err)
	}

	total := valueobject.Zero()
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationSchoolDebt, nil), func(c context.Context) {
		for _, id := range studentIDs {
			var debt valueobject.Money
			debt, err = s.studentDebt(c, id)
			if err != nil {
				return
			}
			total = total.Add(debt)
		}
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return valueobject.Zero(), err
	}
	telemetry.SetAttribute(span, "students", len(studentIDs))
	return total, nil
}
