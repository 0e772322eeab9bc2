// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityRecord represents one logged quantity of a resource consumed by an organization.
type ActivityRecord struct {
	ID             uuid.UUID
	OrganizationID string
	FactorID       uint
	CategoryType   CategoryType // joined from the factor on read
	RecordedFactor decimal.Decimal
	Value          decimal.Decimal
	Timestamp      time.Time
}

// NewActivityRecord creates a new ActivityRecord. The factor value in effect now is
// copied into RecordedFactor and never re-read, so later factor revisions do not
// change historical emissions.
func NewActivityRecord(organizationID string, factor *EmissionFactor, value decimal.Decimal, timestamp time.Time) *ActivityRecord {
	return &ActivityRecord{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		FactorID:       factor.ID,
		CategoryType:   factor.CategoryType,
		RecordedFactor: factor.FactorValue,
		Value:          value,
		Timestamp:      timestamp.UTC(),
	}
}

// Emission returns the record's contribution in kg CO2e.
func (r *ActivityRecord) Emission() decimal.Decimal {
	return r.Value.Mul(r.RecordedFactor)
}
