// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence/model"
)

// emissionDataStore implements the adapter.EmissionDataStore interface.
type emissionDataStore struct {
	db *gorm.DB
}

// NewEmissionDataStore creates a new emission data store instance.
func NewEmissionDataStore(db *gorm.DB) adapter.EmissionDataStore {
	return &emissionDataStore{
		db: db,
	}
}

// QueryActivityRecords retrieves an organization's records with timestamp in [startSeconds, endSeconds],
// joined with their factor's category type, oldest first.
func (s *emissionDataStore) QueryActivityRecords(
	ctx context.Context,
	organizationID string,
	startSeconds, endSeconds int64,
) ([]*entity.ActivityRecord, error) {
	var rows []model.ActivityRecordRow
	err := s.db.WithContext(ctx).
		Table("collected_data AS cd").
		Select("cd.*, f.category_type").
		Joins("INNER JOIN factors f ON f.id = cd.factor_id").
		Where("cd.organization_id = ? AND cd.timestamp BETWEEN ? AND ?", organizationID, startSeconds, endSeconds).
		Order("cd.timestamp ASC, cd.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerror.NewDataUnavailableError("failed to query activity records", err)
	}

	records := make([]*entity.ActivityRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToEntity()
	}
	return records, nil
}

// QueryOffsetPurchases retrieves an organization's purchases with timestamp in [startSeconds, endSeconds],
// oldest first with insertion order breaking ties.
func (s *emissionDataStore) QueryOffsetPurchases(
	ctx context.Context,
	organizationID string,
	startSeconds, endSeconds int64,
) ([]*entity.OffsetPurchase, error) {
	var models []model.OffsetPurchaseModel
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND timestamp BETWEEN ? AND ?", organizationID, startSeconds, endSeconds).
		Order("timestamp ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, domainerror.NewDataUnavailableError("failed to query offset purchases", err)
	}

	purchases := make([]*entity.OffsetPurchase, len(models))
	for i := range models {
		purchases[i] = models[i].ToEntity()
	}
	return purchases, nil
}

// QueryEmissionFactors retrieves the full factor catalogue.
func (s *emissionDataStore) QueryEmissionFactors(ctx context.Context) ([]*entity.EmissionFactor, error) {
	var models []model.EmissionFactorModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, domainerror.NewDataUnavailableError("failed to query emission factors", err)
	}

	factors := make([]*entity.EmissionFactor, len(models))
	for i := range models {
		factors[i] = models[i].ToEntity()
	}
	return factors, nil
}
