// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"context"
	"sort"
	"time"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
)

// OffsetAggregator sums offset purchases per calendar year.
type OffsetAggregator struct {
	store    adapter.EmissionDataStore
	location *time.Location
}

// NewOffsetAggregator creates a new OffsetAggregator. Years are derived in location.
func NewOffsetAggregator(store adapter.EmissionDataStore, location *time.Location) *OffsetAggregator {
	if location == nil {
		location = time.UTC
	}
	return &OffsetAggregator{
		store:    store,
		location: location,
	}
}

// AggregateOffsets returns the tonnage purchased per year within [startSeconds, endSeconds],
// ascending by year. When several purchases fall in one year the price of the most recent
// purchase is reported; equal timestamps resolve to the later one returned by the store.
func (a *OffsetAggregator) AggregateOffsets(
	ctx context.Context,
	organizationID string,
	startSeconds, endSeconds int64,
) ([]OffsetTotal, error) {
	if err := validateQuery(organizationID, startSeconds, endSeconds); err != nil {
		return nil, err
	}

	purchases, err := a.store.QueryOffsetPurchases(ctx, organizationID, startSeconds, endSeconds)
	if err != nil {
		return nil, asDataUnavailable("failed to query offset purchases", err)
	}

	byYear := make(map[int]*OffsetTotal)
	latest := make(map[int]time.Time)
	for _, purchase := range purchases {
		year := purchase.Timestamp.In(a.location).Year()

		total, ok := byYear[year]
		if !ok {
			total = &OffsetTotal{Year: year}
			byYear[year] = total
		}
		total.Tco2e = total.Tco2e.Add(purchase.Tco2e)

		if seen, ok := latest[year]; !ok || !purchase.Timestamp.Before(seen) {
			latest[year] = purchase.Timestamp
			total.PricePerTco2e = purchase.PricePerTco2e
		}
	}

	totals := make([]OffsetTotal, 0, len(byYear))
	for _, total := range byYear {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Year < totals[j].Year
	})

	return totals, nil
}
