// Package activity contains activity record use cases.
package activity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

// emissionPlaces is the number of decimals kept on per-record emissions.
const emissionPlaces = 2

// ActivityOutput represents an activity record in use case outputs.
type ActivityOutput struct {
	Record        *entity.ActivityRecord
	CategoryLabel string
	EmissionKg    decimal.Decimal
	PeriodLabel   string
}

func toActivityOutput(record *entity.ActivityRecord, location *time.Location) ActivityOutput {
	return ActivityOutput{
		Record:        record,
		CategoryLabel: record.CategoryType.Label(),
		EmissionKg:    emission.RoundHalfUp(record.Emission(), emissionPlaces),
		PeriodLabel:   valueobject.FormatMonthYear(record.Timestamp.Unix(), location),
	}
}

func requireOrganization(organizationID string) error {
	if organizationID == "" {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeMissingOrganization,
			"organization_id is required",
			domainerror.ErrMissingOrganization,
		)
	}
	return nil
}
