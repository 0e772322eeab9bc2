// Package model defines database models for persistence layer.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// EmissionFactorModel represents the factors table in the database.
type EmissionFactorModel struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	Name         string          `gorm:"type:varchar(255);not null"`
	CategoryType string          `gorm:"type:varchar(64);not null;index"`
	SubType      string          `gorm:"type:varchar(128)"`
	Unit         string          `gorm:"type:varchar(32);not null"`
	FactorValue  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
}

// TableName returns the table name for the EmissionFactorModel.
func (EmissionFactorModel) TableName() string {
	return "factors"
}

// ToEntity converts an EmissionFactorModel to a domain EmissionFactor entity.
func (m *EmissionFactorModel) ToEntity() *entity.EmissionFactor {
	return &entity.EmissionFactor{
		ID:           m.ID,
		Name:         m.Name,
		CategoryType: entity.CategoryType(m.CategoryType),
		SubType:      m.SubType,
		Unit:         m.Unit,
		FactorValue:  m.FactorValue,
	}
}

// EmissionFactorFromEntity creates an EmissionFactorModel from a domain EmissionFactor entity.
func EmissionFactorFromEntity(factor *entity.EmissionFactor) *EmissionFactorModel {
	return &EmissionFactorModel{
		ID:           factor.ID,
		Name:         factor.Name,
		CategoryType: string(factor.CategoryType),
		SubType:      factor.SubType,
		Unit:         factor.Unit,
		FactorValue:  factor.FactorValue,
	}
}
