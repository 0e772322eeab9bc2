// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

// DefaultRollupYears is the default size of the rollup window in years.
const DefaultRollupYears = 5

// rollupCacheVersion is bumped whenever the cached RollupResult layout changes.
const rollupCacheVersion = "v1"

// RollupConfig configures the rollup window and calendar.
type RollupConfig struct {
	Years    int
	Location *time.Location
}

// ComputeRollupInput represents the input for computing a rollup.
type ComputeRollupInput struct {
	OrganizationID string
	Now            time.Time
}

// MonthlyRollup is the month-granularity part of a rollup. Net equals gross at this granularity.
type MonthlyRollup struct {
	Series                       []EmissionSeries `json:"series"`
	GrossEmissions               []EmissionPoint  `json:"grossEmissions"`
	NetEmissions                 []EmissionPoint  `json:"netEmissions"`
	Chart                        ChartData        `json:"chart"`
	LatestGrossEmissionsTonnes   decimal.Decimal  `json:"latestGrossEmissionsTonnes"`
	PreviousGrossEmissionsTonnes decimal.Decimal  `json:"previousGrossEmissionsTonnes"`
	LatestNetEmissionsTonnes     decimal.Decimal  `json:"latestNetEmissionsTonnes"`
	PreviousNetEmissionsTonnes   decimal.Decimal  `json:"previousNetEmissionsTonnes"`
}

// YearlyRollup is the year-granularity part of a rollup, with offsets applied to net.
type YearlyRollup struct {
	Series                       []EmissionSeries `json:"series"`
	GrossEmissions               []EmissionPoint  `json:"grossEmissions"`
	NetEmissions                 []EmissionPoint  `json:"netEmissions"`
	Offsets                      []OffsetTotal    `json:"offsets"`
	Chart                        ChartData        `json:"chart"`
	LatestGrossEmissionsTonnes   decimal.Decimal  `json:"latestGrossEmissionsTonnes"`
	PreviousGrossEmissionsTonnes decimal.Decimal  `json:"previousGrossEmissionsTonnes"`
	LatestNetEmissionsTonnes     decimal.Decimal  `json:"latestNetEmissionsTonnes"`
	PreviousNetEmissionsTonnes   decimal.Decimal  `json:"previousNetEmissionsTonnes"`
	LatestOffsetTonnes           decimal.Decimal  `json:"latestOffsetTonnes"`
	PreviousOffsetTonnes         decimal.Decimal  `json:"previousOffsetTonnes"`
}

// RollupResult is the full emission rollup of an organization.
type RollupResult struct {
	Monthly MonthlyRollup `json:"monthly"`
	Yearly  YearlyRollup  `json:"yearly"`
}

// ComputeRollupUseCase builds monthly and yearly datasets plus latest-vs-previous figures.
type ComputeRollupUseCase struct {
	emissions *EmissionAggregator
	offsets   *OffsetAggregator
	cache     adapter.RollupCache
	years     int
	location  *time.Location
}

// NewComputeRollupUseCase creates a new ComputeRollupUseCase instance. cache may be nil.
func NewComputeRollupUseCase(store adapter.EmissionDataStore, cache adapter.RollupCache, cfg RollupConfig) *ComputeRollupUseCase {
	if cfg.Years <= 0 {
		cfg.Years = DefaultRollupYears
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ComputeRollupUseCase{
		emissions: NewEmissionAggregator(store, cfg.Location),
		offsets:   NewOffsetAggregator(store, cfg.Location),
		cache:     cache,
		years:     cfg.Years,
		location:  cfg.Location,
	}
}

// Execute computes the rollup for the organization as of input.Now.
// Any failed sub-query fails the whole rollup; there is no partial result.
func (uc *ComputeRollupUseCase) Execute(ctx context.Context, input ComputeRollupInput) (*RollupResult, error) {
	if input.OrganizationID == "" {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeMissingOrganization,
			"organization_id is required",
			domainerror.ErrMissingOrganization,
		)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(uc.location)

	// The generation is read before any store query so a write invalidated
	// mid-compute leaves this result under a key nobody reads.
	cacheKey, cacheable := uc.cacheKey(ctx, input.OrganizationID, now)
	if cacheable {
		if cached := uc.readCache(ctx, input.OrganizationID, cacheKey); cached != nil {
			return cached, nil
		}
	}

	result, err := uc.compute(ctx, input.OrganizationID, now)
	if err != nil {
		slog.Error("Failed to compute emission rollup",
			"organization_id", input.OrganizationID,
			"error", err,
		)
		return nil, err
	}

	if cacheable {
		uc.writeCache(ctx, input.OrganizationID, cacheKey, result)
	}

	return result, nil
}

// compute fans the independent window queries out and joins them before deriving series.
func (uc *ComputeRollupUseCase) compute(ctx context.Context, organizationID string, now time.Time) (*RollupResult, error) {
	window := valueobject.LastNYearsRange(now, uc.years)
	previousYear := valueobject.PreviousYearRange(now)
	previousMonth := valueobject.PreviousMonthRange(now)

	var (
		yearlySeries, monthlySeries             []EmissionSeries
		previousYearSeries, previousMonthSeries []EmissionSeries
		yearlyOffsets, previousYearOffsets      []OffsetTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		yearlySeries, err = uc.emissions.Aggregate(gctx, organizationID, window.StartUnix(), window.EndUnix(), valueobject.GranularityYear)
		return err
	})
	g.Go(func() (err error) {
		yearlyOffsets, err = uc.offsets.AggregateOffsets(gctx, organizationID, window.StartUnix(), window.EndUnix())
		return err
	})
	g.Go(func() (err error) {
		monthlySeries, err = uc.emissions.Aggregate(gctx, organizationID, window.StartUnix(), window.EndUnix(), valueobject.GranularityMonth)
		return err
	})
	g.Go(func() (err error) {
		previousYearSeries, err = uc.emissions.Aggregate(gctx, organizationID, previousYear.StartUnix(), previousYear.EndUnix(), valueobject.GranularityYear)
		return err
	})
	g.Go(func() (err error) {
		previousYearOffsets, err = uc.offsets.AggregateOffsets(gctx, organizationID, previousYear.StartUnix(), previousYear.EndUnix())
		return err
	})
	g.Go(func() (err error) {
		previousMonthSeries, err = uc.emissions.Aggregate(gctx, organizationID, previousMonth.StartUnix(), previousMonth.EndUnix(), valueobject.GranularityMonth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	yearlyGross, yearlyNet := ComputeGrossAndNet(yearlySeries, yearlyOffsets, valueobject.GranularityYear)
	monthlyGross, monthlyNet := ComputeGrossAndNet(monthlySeries, nil, valueobject.GranularityMonth)
	previousYearGross, previousYearNet := ComputeGrossAndNet(previousYearSeries, previousYearOffsets, valueobject.GranularityYear)
	previousMonthGross, previousMonthNet := ComputeGrossAndNet(previousMonthSeries, nil, valueobject.GranularityMonth)

	latestOffset, previousOffset := decimal.Zero, decimal.Zero
	if n := len(yearlyOffsets); n > 0 {
		latestOffset = yearlyOffsets[n-1].Tco2e
		if n > 1 {
			previousOffset = yearlyOffsets[n-2].Tco2e
		}
	}

	return &RollupResult{
		Monthly: MonthlyRollup{
			Series:                       monthlySeries,
			GrossEmissions:               monthlyGross,
			NetEmissions:                 monthlyNet,
			Chart:                        buildChart(periodAxis(monthlySeries), monthlySeries, monthlyGross, monthlyNet, nil),
			LatestGrossEmissionsTonnes:   KgToTonnes(lastEmission(monthlyGross)),
			PreviousGrossEmissionsTonnes: KgToTonnes(lastEmission(previousMonthGross)),
			LatestNetEmissionsTonnes:     KgToTonnes(lastEmission(monthlyNet)),
			PreviousNetEmissionsTonnes:   KgToTonnes(lastEmission(previousMonthNet)),
		},
		Yearly: YearlyRollup{
			Series:         yearlySeries,
			GrossEmissions: yearlyGross,
			NetEmissions:   yearlyNet,
			Offsets:        yearlyOffsets,
			Chart: buildChart(
				yearLabels(window.Start.Year(), window.End.Year()),
				yearlySeries, yearlyGross, yearlyNet, offsetPoints(yearlyOffsets),
			),
			LatestGrossEmissionsTonnes:   KgToTonnes(lastEmission(yearlyGross)),
			PreviousGrossEmissionsTonnes: KgToTonnes(lastEmission(previousYearGross)),
			LatestNetEmissionsTonnes:     KgToTonnes(lastEmission(yearlyNet)),
			PreviousNetEmissionsTonnes:   KgToTonnes(lastEmission(previousYearNet)),
			LatestOffsetTonnes:           RoundHalfUp(latestOffset, tonnesPlaces),
			PreviousOffsetTonnes:         RoundHalfUp(previousOffset, tonnesPlaces),
		},
	}, nil
}

// cacheKey builds the cache key from the organization's current generation and the
// calendar month of now, which is all the rollup depends on. It reports false when
// there is no cache or the generation cannot be read.
func (uc *ComputeRollupUseCase) cacheKey(ctx context.Context, organizationID string, now time.Time) (string, bool) {
	if uc.cache == nil {
		return "", false
	}

	generation, err := uc.cache.Generation(ctx, organizationID)
	if err != nil {
		slog.Warn("Rollup cache generation read failed", "organization_id", organizationID, "error", err)
		return "", false
	}

	return fmt.Sprintf("rollup:%s:%s:g%d", rollupCacheVersion, now.Format("2006-01"), generation), true
}

// readCache returns a cached rollup, or nil on a miss. Cache failures degrade to a miss.
func (uc *ComputeRollupUseCase) readCache(ctx context.Context, organizationID, key string) *RollupResult {
	payload, err := uc.cache.Get(ctx, organizationID, key)
	if err != nil {
		slog.Warn("Rollup cache read failed", "organization_id", organizationID, "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}

	var result RollupResult
	if err := json.Unmarshal(payload, &result); err != nil {
		slog.Warn("Discarding unreadable cached rollup", "organization_id", organizationID, "error", err)
		return nil
	}

	slog.Debug("Rollup served from cache", "organization_id", organizationID, "key", key)
	return &result
}

func (uc *ComputeRollupUseCase) writeCache(ctx context.Context, organizationID, key string, result *RollupResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		slog.Warn("Failed to encode rollup for cache", "organization_id", organizationID, "error", err)
		return
	}

	if err := uc.cache.Set(ctx, organizationID, key, payload); err != nil {
		slog.Warn("Rollup cache write failed", "organization_id", organizationID, "error", err)
	}
}

// InvalidateRollups drops the organization's cached rollups after a write.
// A failed invalidation is logged; the cache entry then expires on its TTL.
func InvalidateRollups(ctx context.Context, cache adapter.RollupCache, organizationID string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, organizationID); err != nil {
		slog.Warn("Rollup cache invalidation failed", "organization_id", organizationID, "error", err)
	}
}
