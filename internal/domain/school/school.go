package school

import (
	"github.com/mattilda/backend/internal/domain/shared"
)

// School is the aggregate root for an institution that bills its students.
type School struct {
	shared.BaseEntity
	Name     string
	Address  string
	Phone    string
	Email    string
	IsActive bool
}

// NewSchool creates an active school
func NewSchool(name, address, phone, email string) (*School, error) {
	s := &School{
		BaseEntity: shared.NewBaseEntity(),
		IsActive:   true,
	}
	if err := s.Update(name, address, phone, email); err != nil {
		return nil, err
	}
	s.CreatedAt = s.UpdatedAt
	return s, nil
}

// Update replaces the school's descriptive fields
func (s *School) Update(name, address, phone, email string) error {
	if err := shared.ValidateRequired("name", name, 200); err != nil {
		return err
	}
	if err := shared.ValidateMaxLength("address", address, 500); err != nil {
		return err
	}
	if err := shared.ValidatePhone(phone); err != nil {
		return err
	}
	if err := shared.ValidateEmail(email); err != nil {
		return err
	}

	s.Name = name
	s.Address = address
	s.Phone = phone
	s.Email = email
	s.Touch()
	return nil
}

// Activate marks the school as active
func (s *School) Activate() {
	s.IsActive = true
	s.Touch()
}

// Deactivate marks the school as inactive
func (s *School) Deactivate() {
	s.IsActive = false
	s.Touch()
}
