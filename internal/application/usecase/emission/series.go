// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// tonnesPlaces is the number of decimals kept when kg totals are surfaced as tonnes.
const tonnesPlaces = 2

// EmissionPoint is the emission total of one period, in kg CO2e.
type EmissionPoint struct {
	Period    string          `json:"period"`
	Emissions decimal.Decimal `json:"emissions"`
}

// EmissionSeries holds the per-period totals of one category, ascending by period.
// Periods without activity are absent.
type EmissionSeries struct {
	CategoryType entity.CategoryType `json:"categoryType"`
	Points       []EmissionPoint     `json:"points"`
}

// valueAt returns the series total for period, or zero when the period is absent.
func (s EmissionSeries) valueAt(period string) decimal.Decimal {
	for _, p := range s.Points {
		if p.Period == period {
			return p.Emissions
		}
	}
	return decimal.Zero
}

// OffsetTotal is the offset tonnage purchased in one calendar year.
type OffsetTotal struct {
	Year          int             `json:"year"`
	Tco2e         decimal.Decimal `json:"tco2e"`
	PricePerTco2e decimal.Decimal `json:"pricePerTco2e"`
}

// KgToTonnes converts a kg total to tonnes rounded half-up to two decimals.
func KgToTonnes(kg decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(kg.Div(entity.KgPerTonne), tonnesPlaces)
}

// RoundHalfUp rounds d to places decimals with ties going towards positive infinity.
// decimal.Round rounds ties away from zero, which differs for negative net totals.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	half := decimal.New(5, -(places + 1))
	return d.Add(half).RoundFloor(places)
}

// lastEmission returns the emissions of the last point, or zero for an empty series.
func lastEmission(points []EmissionPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	return points[len(points)-1].Emissions
}
