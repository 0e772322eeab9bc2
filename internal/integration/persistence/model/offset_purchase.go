// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// OffsetPurchaseModel represents the offset_data table in the database.
// Timestamp is stored as Unix seconds.
type OffsetPurchaseModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID string          `gorm:"type:varchar(64);not null;index:idx_offset_data_org_ts,priority:1"`
	Tco2e          decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	PricePerTco2e  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Timestamp      int64           `gorm:"not null;index:idx_offset_data_org_ts,priority:2"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the OffsetPurchaseModel.
func (OffsetPurchaseModel) TableName() string {
	return "offset_data"
}

// ToEntity converts an OffsetPurchaseModel to a domain OffsetPurchase entity.
func (m *OffsetPurchaseModel) ToEntity() *entity.OffsetPurchase {
	return &entity.OffsetPurchase{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Tco2e:          m.Tco2e,
		PricePerTco2e:  m.PricePerTco2e,
		Timestamp:      time.Unix(m.Timestamp, 0).UTC(),
		CreatedAt:      m.CreatedAt,
	}
}

// OffsetPurchaseFromEntity creates an OffsetPurchaseModel from a domain OffsetPurchase entity.
func OffsetPurchaseFromEntity(purchase *entity.OffsetPurchase) *OffsetPurchaseModel {
	return &OffsetPurchaseModel{
		ID:             purchase.ID,
		OrganizationID: purchase.OrganizationID,
		Tco2e:          purchase.Tco2e,
		PricePerTco2e:  purchase.PricePerTco2e,
		Timestamp:      purchase.Timestamp.Unix(),
		CreatedAt:      purchase.CreatedAt,
	}
}

// AllModels lists every model managed by auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&EmissionFactorModel{},
		&ActivityRecordModel{},
		&OffsetPurchaseModel{},
	}
}
