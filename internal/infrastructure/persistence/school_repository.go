package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/school"
	"github.com/mattilda/backend/internal/domain/shared"
	"github.com/mattilda/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSchoolRepository implements school.Repository using GORM
type GormSchoolRepository struct {
	db *gorm.DB
}

// NewGormSchoolRepository creates a new GormSchoolRepository
func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// FindByID finds a school by its ID
func (r *GormSchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*school.School, error) {
	var model models.SchoolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "school", id)
	}
	return model.ToDomain(), nil
}

// Exists reports whether a school with the given ID exists
func (r *GormSchoolRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SchoolModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of schools ordered by name
func (r *GormSchoolRepository) List(ctx context.Context, filter school.Filter, page shared.PageRequest) ([]school.School, error) {
	var rows []models.SchoolModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SchoolModel{}), filter).
		Order("name ASC").
		Order("id ASC")
	if err := paginate(query, page).Find(&rows).Error; err != nil {
		return nil, err
	}

	schools := make([]school.School, len(rows))
	for i := range rows {
		schools[i] = *rows[i].ToDomain()
	}
	return schools, nil
}

// Count counts schools matching the filter
func (r *GormSchoolRepository) Count(ctx context.Context, filter school.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SchoolModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a school
func (r *GormSchoolRepository) Save(ctx context.Context, s *school.School) error {
	model := models.SchoolModelFromDomain(s)
	return translateWriteError(r.db.WithContext(ctx).Save(model).Error, "school")
}

// Delete deletes a school row
func (r *GormSchoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SchoolModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("school", id)
	}
	return nil
}

func (r *GormSchoolRepository) applyFilter(query *gorm.DB, filter school.Filter) *gorm.DB {
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// Ensure GormSchoolRepository implements school.Repository
var _ school.Repository = (*GormSchoolRepository)(nil)
