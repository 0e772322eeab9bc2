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

// offsetPurchaseRepository implements the adapter.OffsetPurchaseRepository interface.
type offsetPurchaseRepository struct {
	db *gorm.DB
}

// NewOffsetPurchaseRepository creates a new offset purchase repository instance.
func NewOffsetPurchaseRepository(db *gorm.DB) adapter.OffsetPurchaseRepository {
	return &offsetPurchaseRepository{
		db: db,
	}
}

// Create creates a new offset purchase in the database.
func (r *offsetPurchaseRepository) Create(ctx context.Context, purchase *entity.OffsetPurchase) error {
	if err := r.db.WithContext(ctx).Create(model.OffsetPurchaseFromEntity(purchase)).Error; err != nil {
		return domainerror.NewDataUnavailableError("failed to create offset purchase", err)
	}
	return nil
}

// FindByOrganization retrieves all purchases of an organization, newest first.
func (r *offsetPurchaseRepository) FindByOrganization(ctx context.Context, organizationID string) ([]*entity.OffsetPurchase, error) {
	var models []model.OffsetPurchaseModel
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("timestamp DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewDataUnavailableError("failed to list offset purchases", result.Error)
	}

	purchases := make([]*entity.OffsetPurchase, len(models))
	for i := range models {
		purchases[i] = models[i].ToEntity()
	}
	return purchases, nil
}
