// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// ChartKind is how a dataset is drawn.
type ChartKind string

const (
	ChartKindBar  ChartKind = "bar"
	ChartKindLine ChartKind = "line"
)

// Chart axes: category bars use the emissions axis, totals and offsets the totals axis.
const (
	AxisEmissions = "emissions"
	AxisTotals    = "totals"
)

// ChartDataset is one labeled series filled over the chart's full period axis.
type ChartDataset struct {
	Label string          `json:"label"`
	Color string          `json:"color"`
	Kind  ChartKind       `json:"kind"`
	Axis  string          `json:"axis"`
	Data  []EmissionPoint `json:"data"`
}

// ChartData is a chart-ready view of a rollup granularity.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// buildChart lays every series out over labels, filling gaps with zero.
// offsets is nil for charts without an offset series.
func buildChart(labels []string, series []EmissionSeries, gross, net, offsets []EmissionPoint) ChartData {
	datasets := make([]ChartDataset, 0, len(series)+3)
	for _, s := range series {
		datasets = append(datasets, ChartDataset{
			Label: s.CategoryType.Label(),
			Color: s.CategoryType.Color(),
			Kind:  ChartKindBar,
			Axis:  AxisEmissions,
			Data:  fillPoints(labels, s.Points),
		})
	}

	if offsets != nil {
		datasets = append(datasets, totalsDataset(entity.OffsetSeriesLabel, labels, offsets))
	}
	datasets = append(datasets,
		totalsDataset(entity.GrossSeriesLabel, labels, gross),
		totalsDataset(entity.NetSeriesLabel, labels, net),
	)

	return ChartData{
		Labels:   labels,
		Datasets: datasets,
	}
}

func totalsDataset(label string, labels []string, points []EmissionPoint) ChartDataset {
	return ChartDataset{
		Label: label,
		Color: entity.ColorFor(label),
		Kind:  ChartKindLine,
		Axis:  AxisTotals,
		Data:  fillPoints(labels, points),
	}
}

func fillPoints(labels []string, points []EmissionPoint) []EmissionPoint {
	byPeriod := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byPeriod[p.Period] = p.Emissions
	}

	filled := make([]EmissionPoint, 0, len(labels))
	for _, label := range labels {
		filled = append(filled, EmissionPoint{Period: label, Emissions: byPeriod[label]})
	}
	return filled
}

// yearLabels returns every year from startYear to endYear as "YYYY" keys.
func yearLabels(startYear, endYear int) []string {
	labels := make([]string, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		labels = append(labels, yearKey(year))
	}
	return labels
}

// offsetPoints converts yearly offset tonnage to kg points keyed by year.
func offsetPoints(offsets []OffsetTotal) []EmissionPoint {
	points := make([]EmissionPoint, 0, len(offsets))
	for _, offset := range offsets {
		points = append(points, EmissionPoint{
			Period:    yearKey(offset.Year),
			Emissions: offset.Tco2e.Mul(entity.KgPerTonne),
		})
	}
	return points
}

// yearKey renders a year the way year-granularity period keys are rendered.
func yearKey(year int) string {
	return fmt.Sprintf("%04d", year)
}
