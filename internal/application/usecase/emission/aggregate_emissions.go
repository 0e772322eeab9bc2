// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

// EmissionAggregator groups raw activity records into per-category period series.
type EmissionAggregator struct {
	store    adapter.EmissionDataStore
	location *time.Location
}

// NewEmissionAggregator creates a new EmissionAggregator. Period keys are derived in location.
func NewEmissionAggregator(store adapter.EmissionDataStore, location *time.Location) *EmissionAggregator {
	if location == nil {
		location = time.UTC
	}
	return &EmissionAggregator{
		store:    store,
		location: location,
	}
}

// Aggregate returns one series per category type with activity in [startSeconds, endSeconds],
// each point summing value*recordedFactor for one month or year. Series are ordered by
// category type, points ascending by period.
func (a *EmissionAggregator) Aggregate(
	ctx context.Context,
	organizationID string,
	startSeconds, endSeconds int64,
	granularity valueobject.Granularity,
) ([]EmissionSeries, error) {
	if err := validateQuery(organizationID, startSeconds, endSeconds); err != nil {
		return nil, err
	}
	if !granularity.IsValid() {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: month or year",
			domainerror.ErrInvalidGranularity,
		)
	}

	records, err := a.store.QueryActivityRecords(ctx, organizationID, startSeconds, endSeconds)
	if err != nil {
		return nil, asDataUnavailable("failed to query activity records", err)
	}

	totals := make(map[entity.CategoryType]map[string]decimal.Decimal)
	for _, record := range records {
		byPeriod, ok := totals[record.CategoryType]
		if !ok {
			byPeriod = make(map[string]decimal.Decimal)
			totals[record.CategoryType] = byPeriod
		}
		key := granularity.PeriodKey(record.Timestamp.In(a.location))
		byPeriod[key] = byPeriod[key].Add(record.Emission())
	}

	series := make([]EmissionSeries, 0, len(totals))
	for categoryType, byPeriod := range totals {
		periods := make([]string, 0, len(byPeriod))
		for period := range byPeriod {
			periods = append(periods, period)
		}
		sort.Strings(periods)

		points := make([]EmissionPoint, 0, len(periods))
		for _, period := range periods {
			points = append(points, EmissionPoint{Period: period, Emissions: byPeriod[period]})
		}
		series = append(series, EmissionSeries{CategoryType: categoryType, Points: points})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].CategoryType < series[j].CategoryType
	})

	return series, nil
}

// validateQuery validates the organization and interval shared by both aggregators.
func validateQuery(organizationID string, startSeconds, endSeconds int64) error {
	if organizationID == "" {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeMissingOrganization,
			"organization_id is required",
			domainerror.ErrMissingOrganization,
		)
	}

	if startSeconds > endSeconds {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeInvalidInterval,
			"interval start must not be after end",
			domainerror.ErrInvalidInterval,
		)
	}

	return nil
}

// asDataUnavailable keeps store errors that are already classified and wraps the rest.
func asDataUnavailable(operation string, err error) error {
	if domainerror.IsDataUnavailable(err) {
		return err
	}
	return domainerror.NewDataUnavailableError(operation, err)
}
