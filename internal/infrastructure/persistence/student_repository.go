package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/domain/student"
	"github.com/mattilda/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStudentRepository implements student.Repository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByID finds a student by its ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "student", id)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a student by email
func (r *GormStudentRepository) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a student by its code within a school
func (r *GormStudentRepository) FindByCode(ctx context.Context, schoolID uuid.UUID, code string) (*student.Student, error) {
	var model models.StudentModel
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND student_code = ?", schoolID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of students ordered by last and first name
func (r *GormStudentRepository) List(ctx context.Context, filter student.Filter, page shared.PageRequest) ([]student.Student, error) {
	var rows []models.StudentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StudentModel{}), filter).
		Order("last_name ASC").
		Order("first_name ASC").
		Order("id ASC")
	if err := paginate(query, page).Find(&rows).Error; err != nil {
		return nil, err
	}

	students := make([]student.Student, len(rows))
	for i := range rows {
		students[i] = *rows[i].ToDomain()
	}
	return students, nil
}

// ListIDsBySchool returns every student ID of a school
func (r *GormStudentRepository) ListIDsBySchool(ctx context.Context, schoolID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.StudentModel{}).
		Where("school_id = ?", schoolID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Count counts students matching the filter
func (r *GormStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StudentModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, s *student.Student) error {
	model := models.StudentModelFromDomain(s)
	return translateWriteError(r.db.WithContext(ctx).Save(model).Error, "student")
}

// Delete deletes a student row
func (r *GormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StudentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("student", id)
	}
	return nil
}

// DeleteBySchool deletes every student of a school
func (r *GormStudentRepository) DeleteBySchool(ctx context.Context, schoolID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("school_id = ?", schoolID).Delete(&models.StudentModel{}).Error
}

func (r *GormStudentRepository) applyFilter(query *gorm.DB, filter student.Filter) *gorm.DB {
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// Ensure GormStudentRepository implements student.Repository
var _ student.Repository = (*GormStudentRepository)(nil)
