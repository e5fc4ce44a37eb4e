package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/student"
	"gorm.io/datatypes"
)

// SchoolModel is the persistence model for the School entity
type SchoolModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Address  string `gorm:"type:varchar(500)"`
	Phone    string `gorm:"type:varchar(20)"`
	Email    string `gorm:"type:varchar(100)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SchoolModel) TableName() string {
	return "schools"
}

// ToDomain converts the persistence model to a domain School entity
func (m *SchoolModel) ToDomain() *school.School {
	return &school.School{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Phone:      m.Phone,
		Email:      m.Email,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain School entity
func (m *SchoolModel) FromDomain(s *school.School) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Address = s.Address
	m.Phone = s.Phone
	m.Email = s.Email
	m.IsActive = s.IsActive
}

// SchoolModelFromDomain creates a new persistence model from a domain School entity
func SchoolModelFromDomain(s *school.School) *SchoolModel {
	m := &SchoolModel{}
	m.FromDomain(s)
	return m
}

// StudentModel is the persistence model for the Student entity.
// Email and StudentCode are stored as NULL when empty.
type StudentModel struct {
	BaseModel
	SchoolID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_student_school_code,priority:1"`
	FirstName   string          `gorm:"type:varchar(100);not null"`
	LastName    string          `gorm:"type:varchar(100);not null"`
	Email       *string         `gorm:"type:varchar(100);uniqueIndex:idx_student_email"`
	StudentCode *string         `gorm:"type:varchar(50);uniqueIndex:idx_student_school_code,priority:2"`
	DateOfBirth *datatypes.Date `gorm:"type:date"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student entity
func (m *StudentModel) ToDomain() *student.Student {
	st := &student.Student{
		BaseEntity:  m.BaseModel.ToDomain(),
		SchoolID:    m.SchoolID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       stringValue(m.Email),
		StudentCode: stringValue(m.StudentCode),
		IsActive:    m.IsActive,
	}
	if m.DateOfBirth != nil {
		dob := dateToTime(*m.DateOfBirth)
		st.DateOfBirth = &dob
	}
	return st
}

// FromDomain populates the persistence model from a domain Student entity
func (m *StudentModel) FromDomain(s *student.Student) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.SchoolID = s.SchoolID
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.Email = nullableString(s.Email)
	m.StudentCode = nullableString(s.StudentCode)
	m.IsActive = s.IsActive
	m.DateOfBirth = nil
	if s.DateOfBirth != nil {
		dob := datatypes.Date(*s.DateOfBirth)
		m.DateOfBirth = &dob
	}
}

// StudentModelFromDomain creates a new persistence model from a domain Student entity
func StudentModelFromDomain(s *student.Student) *StudentModel {
	m := &StudentModel{}
	m.FromDomain(s)
	return m
}

// dateToTime returns the calendar day of d at UTC midnight
func dateToTime(d datatypes.Date) time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
