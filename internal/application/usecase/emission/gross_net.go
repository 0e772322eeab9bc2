// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

// ComputeGrossAndNet merges category series into gross and net series over the union of
// their periods. A category absent from a period contributes zero.
//
// Offsets are year-level instruments: at year granularity net subtracts the matching
// year's tonnage (in kg), at month granularity net always equals gross.
func ComputeGrossAndNet(
	series []EmissionSeries,
	offsets []OffsetTotal,
	granularity valueobject.Granularity,
) (gross, net []EmissionPoint) {
	periods := periodAxis(series)

	offsetKg := make(map[int]decimal.Decimal, len(offsets))
	for _, offset := range offsets {
		offsetKg[offset.Year] = offsetKg[offset.Year].Add(offset.Tco2e.Mul(entity.KgPerTonne))
	}

	gross = make([]EmissionPoint, 0, len(periods))
	net = make([]EmissionPoint, 0, len(periods))
	for _, period := range periods {
		total := decimal.Zero
		for _, s := range series {
			total = total.Add(s.valueAt(period))
		}
		gross = append(gross, EmissionPoint{Period: period, Emissions: total})

		netTotal := total
		if granularity == valueobject.GranularityYear {
			if year, err := valueobject.YearOfPeriodKey(period); err == nil {
				if kg, ok := offsetKg[year]; ok {
					netTotal = total.Sub(kg)
				}
			}
		}
		net = append(net, EmissionPoint{Period: period, Emissions: netTotal})
	}

	return gross, net
}

// periodAxis returns the sorted, de-duplicated union of period keys across series.
func periodAxis(series []EmissionSeries) []string {
	seen := make(map[string]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			seen[p.Period] = struct{}{}
		}
	}

	periods := make([]string, 0, len(seen))
	for period := range seen {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	return periods
}
