package student

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
)

// Student belongs to exactly one school and is the debtor of its invoices.
type Student struct {
	shared.BaseEntity
	SchoolID    uuid.UUID
	FirstName   string
	LastName    string
	Email       string // optional, globally unique when set
	StudentCode string // optional, unique within the school when set
	DateOfBirth *time.Time
	IsActive    bool
}

// Profile groups the descriptive fields of a student
type Profile struct {
	FirstName   string
	LastName    string
	Email       string
	StudentCode string
	DateOfBirth *time.Time
}

// NewStudent creates an active student enrolled in schoolID
func NewStudent(schoolID uuid.UUID, p Profile) (*Student, error) {
	if schoolID == uuid.Nil {
		return nil, shared.Validation("school_id is required")
	}
	s := &Student{
		BaseEntity: shared.NewBaseEntity(),
		SchoolID:   schoolID,
		IsActive:   true,
	}
	if err := s.UpdateProfile(p); err != nil {
		return nil, err
	}
	s.CreatedAt = s.UpdatedAt
	return s, nil
}

// FullName returns first and last name joined by a space
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// UpdateProfile replaces the descriptive fields
func (s *Student) UpdateProfile(p Profile) error {
	if err := shared.ValidateRequired("first_name", p.FirstName, 100); err != nil {
		return err
	}
	if err := shared.ValidateRequired("last_name", p.LastName, 100); err != nil {
		return err
	}
	if err := shared.ValidateEmail(p.Email); err != nil {
		return err
	}
	if err := shared.ValidateMaxLength("student_code", p.StudentCode, 50); err != nil {
		return err
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return shared.Validation("date_of_birth cannot be in the future")
	}

	s.FirstName = strings.TrimSpace(p.FirstName)
	s.LastName = strings.TrimSpace(p.LastName)
	s.Email = strings.TrimSpace(p.Email)
	s.StudentCode = strings.TrimSpace(p.StudentCode)
	s.DateOfBirth = p.DateOfBirth
	s.Touch()
	return nil
}

// MoveToSchool reassigns the student. Debt checks belong to the caller because
// they need the billing aggregates.
func (s *Student) MoveToSchool(schoolID uuid.UUID) error {
	if schoolID == uuid.Nil {
		return shared.Validation("school_id is required")
	}
	s.SchoolID = schoolID
	s.Touch()
	return nil
}

// SetActive toggles the active flag
func (s *Student) SetActive(active bool) {
	s.IsActive = active
	s.Touch()
}
