// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence/model"
)

// activityRecordRepository implements the adapter.ActivityRecordRepository interface.
type activityRecordRepository struct {
	db *gorm.DB
}

// NewActivityRecordRepository creates a new activity record repository instance.
func NewActivityRecordRepository(db *gorm.DB) adapter.ActivityRecordRepository {
	return &activityRecordRepository{
		db: db,
	}
}

// Create creates a new activity record in the database.
func (r *activityRecordRepository) Create(ctx context.Context, record *entity.ActivityRecord) error {
	recordModel := model.ActivityRecordFromEntity(record)
	recordModel.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(recordModel).Error; err != nil {
		return domainerror.NewDataUnavailableError("failed to create activity record", err)
	}
	return nil
}

// FindByOrganization retrieves an organization's records matching filter, newest first.
func (r *activityRecordRepository) FindByOrganization(
	ctx context.Context,
	organizationID string,
	filter adapter.ActivityFilter,
) ([]*entity.ActivityRecord, error) {
	query := r.db.WithContext(ctx).
		Table("collected_data AS cd").
		Select("cd.*, f.category_type").
		Joins("INNER JOIN factors f ON f.id = cd.factor_id").
		Where("cd.organization_id = ?", organizationID)

	if filter.CategoryType != nil {
		query = query.Where("f.category_type = ?", string(*filter.CategoryType))
	}
	if filter.StartSeconds != nil {
		query = query.Where("cd.timestamp >= ?", *filter.StartSeconds)
	}
	if filter.EndSeconds != nil {
		query = query.Where("cd.timestamp <= ?", *filter.EndSeconds)
	}

	var rows []model.ActivityRecordRow
	if err := query.Order("cd.timestamp DESC, cd.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, domainerror.NewDataUnavailableError("failed to list activity records", err)
	}

	records := make([]*entity.ActivityRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToEntity()
	}
	return records, nil
}

// Delete removes a record owned by the organization.
func (r *activityRecordRepository) Delete(ctx context.Context, organizationID string, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Delete(&model.ActivityRecordModel{})
	if result.Error != nil {
		return false, domainerror.NewDataUnavailableError("failed to delete activity record", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// emissionFactorRepository implements the adapter.EmissionFactorRepository interface.
type emissionFactorRepository struct {
	db *gorm.DB
}

// NewEmissionFactorRepository creates a new emission factor repository instance.
func NewEmissionFactorRepository(db *gorm.DB) adapter.EmissionFactorRepository {
	return &emissionFactorRepository{
		db: db,
	}
}

// FindByID retrieves a factor by its ID.
func (r *emissionFactorRepository) FindByID(ctx context.Context, id uint) (*entity.EmissionFactor, error) {
	var factorModel model.EmissionFactorModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&factorModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainerror.NewDataUnavailableError("failed to find emission factor", result.Error)
	}
	return factorModel.ToEntity(), nil
}
