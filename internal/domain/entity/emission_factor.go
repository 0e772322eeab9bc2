// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// EmissionFactor is a named conversion constant in kg CO2e per unit.
// Factors are managed by administrators and only read by the emission core.
type EmissionFactor struct {
	ID           uint
	Name         string
	CategoryType CategoryType
	SubType      string
	Unit         string
	FactorValue  decimal.Decimal
}
