// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KgPerTonne converts tonnes of CO2e to kilograms.
var KgPerTonne = decimal.NewFromInt(1000)

// OffsetPurchase is a record of carbon offset bought by an organization.
type OffsetPurchase struct {
	ID             uuid.UUID
	OrganizationID string
	Tco2e          decimal.Decimal
	PricePerTco2e  decimal.Decimal
	Timestamp      time.Time
	CreatedAt      time.Time
}

// NewOffsetPurchase creates a new OffsetPurchase entity.
func NewOffsetPurchase(organizationID string, tco2e, pricePerTco2e decimal.Decimal, timestamp time.Time) *OffsetPurchase {
	return &OffsetPurchase{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Tco2e:          tco2e,
		PricePerTco2e:  pricePerTco2e,
		Timestamp:      timestamp.UTC(),
		CreatedAt:      time.Now().UTC(),
	}
}

// Kg returns the offset tonnage in kg CO2e.
func (o *OffsetPurchase) Kg() decimal.Decimal {
	return o.Tco2e.Mul(KgPerTonne)
}
