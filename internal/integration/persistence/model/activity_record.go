// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// ActivityRecordModel represents the collected_data table in the database.
// Timestamp is stored as Unix seconds.
type ActivityRecordModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID string          `gorm:"type:varchar(64);not null;index:idx_collected_data_org_ts,priority:1"`
	FactorID       uint            `gorm:"not null;index"`
	RecordedFactor decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Value          decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Timestamp      int64           `gorm:"not null;index:idx_collected_data_org_ts,priority:2"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ActivityRecordModel.
func (ActivityRecordModel) TableName() string {
	return "collected_data"
}

// ActivityRecordRow is an activity record joined with its factor's category type.
type ActivityRecordRow struct {
	ActivityRecordModel
	CategoryType string
}

// ToEntity converts an ActivityRecordRow to a domain ActivityRecord entity.
func (r *ActivityRecordRow) ToEntity() *entity.ActivityRecord {
	return &entity.ActivityRecord{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		FactorID:       r.FactorID,
		CategoryType:   entity.CategoryType(r.CategoryType),
		RecordedFactor: r.RecordedFactor,
		Value:          r.Value,
		Timestamp:      time.Unix(r.Timestamp, 0).UTC(),
	}
}

// ActivityRecordFromEntity creates an ActivityRecordModel from a domain ActivityRecord entity.
func ActivityRecordFromEntity(record *entity.ActivityRecord) *ActivityRecordModel {
	return &ActivityRecordModel{
		ID:             record.ID,
		OrganizationID: record.OrganizationID,
		FactorID:       record.FactorID,
		RecordedFactor: record.RecordedFactor,
		Value:          record.Value,
		Timestamp:      record.Timestamp.Unix(),
	}
}
