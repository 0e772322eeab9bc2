// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
)

// EmissionPointResponse represents one period total in kg CO2e.
type EmissionPointResponse struct {
	Period    string  `json:"period"`
	Emissions float64 `json:"emissions"`
}

// EmissionSeriesResponse represents the per-period totals of one category.
type EmissionSeriesResponse struct {
	CategoryType string                  `json:"categoryType"`
	Label        string                  `json:"label"`
	Points       []EmissionPointResponse `json:"points"`
}

// OffsetTotalResponse represents the offsets purchased in one year.
type OffsetTotalResponse struct {
	Year          int     `json:"year"`
	Tco2e         float64 `json:"tco2e"`
	PricePerTco2e float64 `json:"pricePerTco2e"`
}

// ChartDatasetResponse represents one chart series aligned with ChartResponse.Labels.
type ChartDatasetResponse struct {
	Label string    `json:"label"`
	Color string    `json:"color"`
	Kind  string    `json:"kind"`
	Axis  string    `json:"axis"`
	Data  []float64 `json:"data"`
}

// ChartResponse represents chart-ready data.
type ChartResponse struct {
	Labels   []string               `json:"labels"`
	Datasets []ChartDatasetResponse `json:"datasets"`
}

// MonthlyRollupResponse represents the month-granularity rollup.
type MonthlyRollupResponse struct {
	Series                       []EmissionSeriesResponse `json:"series"`
	GrossEmissions               []EmissionPointResponse  `json:"grossEmissions"`
	NetEmissions                 []EmissionPointResponse  `json:"netEmissions"`
	Chart                        ChartResponse            `json:"chart"`
	LatestGrossEmissionsTonnes   float64                  `json:"latestGrossEmissionsTonnes"`
	PreviousGrossEmissionsTonnes float64                  `json:"previousGrossEmissionsTonnes"`
	LatestNetEmissionsTonnes     float64                  `json:"latestNetEmissionsTonnes"`
	PreviousNetEmissionsTonnes   float64                  `json:"previousNetEmissionsTonnes"`
}

// YearlyRollupResponse represents the year-granularity rollup.
type YearlyRollupResponse struct {
	Series                       []EmissionSeriesResponse `json:"series"`
	GrossEmissions               []EmissionPointResponse  `json:"grossEmissions"`
	NetEmissions                 []EmissionPointResponse  `json:"netEmissions"`
	Offsets                      []OffsetTotalResponse    `json:"offsets"`
	Chart                        ChartResponse            `json:"chart"`
	LatestGrossEmissionsTonnes   float64                  `json:"latestGrossEmissionsTonnes"`
	PreviousGrossEmissionsTonnes float64                  `json:"previousGrossEmissionsTonnes"`
	LatestNetEmissionsTonnes     float64                  `json:"latestNetEmissionsTonnes"`
	PreviousNetEmissionsTonnes   float64                  `json:"previousNetEmissionsTonnes"`
	LatestOffsetTonnes           float64                  `json:"latestOffsetTonnes"`
	PreviousOffsetTonnes         float64                  `json:"previousOffsetTonnes"`
}

// RollupResponse represents the response for GET /emissions/rollup.
type RollupResponse struct {
	Monthly MonthlyRollupResponse `json:"monthly"`
	Yearly  YearlyRollupResponse  `json:"yearly"`
}

// ToRollupResponse converts a RollupResult to its JSON representation.
func ToRollupResponse(result *emission.RollupResult) RollupResponse {
	m, y := result.Monthly, result.Yearly

	offsets := make([]OffsetTotalResponse, len(y.Offsets))
	for i, o := range y.Offsets {
		offsets[i] = OffsetTotalResponse{
			Year:          o.Year,
			Tco2e:         o.Tco2e.InexactFloat64(),
			PricePerTco2e: o.PricePerTco2e.InexactFloat64(),
		}
	}

	return RollupResponse{
		Monthly: MonthlyRollupResponse{
			Series:                       toSeriesResponses(m.Series),
			GrossEmissions:               toPointResponses(m.GrossEmissions),
			NetEmissions:                 toPointResponses(m.NetEmissions),
			Chart:                        toChartResponse(m.Chart),
			LatestGrossEmissionsTonnes:   toFloat(m.LatestGrossEmissionsTonnes),
			PreviousGrossEmissionsTonnes: toFloat(m.PreviousGrossEmissionsTonnes),
			LatestNetEmissionsTonnes:     toFloat(m.LatestNetEmissionsTonnes),
			PreviousNetEmissionsTonnes:   toFloat(m.PreviousNetEmissionsTonnes),
		},
		Yearly: YearlyRollupResponse{
			Series:                       toSeriesResponses(y.Series),
			GrossEmissions:               toPointResponses(y.GrossEmissions),
			NetEmissions:                 toPointResponses(y.NetEmissions),
			Offsets:                      offsets,
			Chart:                        toChartResponse(y.Chart),
			LatestGrossEmissionsTonnes:   toFloat(y.LatestGrossEmissionsTonnes),
			PreviousGrossEmissionsTonnes: toFloat(y.PreviousGrossEmissionsTonnes),
			LatestNetEmissionsTonnes:     toFloat(y.LatestNetEmissionsTonnes),
			PreviousNetEmissionsTonnes:   toFloat(y.PreviousNetEmissionsTonnes),
			LatestOffsetTonnes:           toFloat(y.LatestOffsetTonnes),
			PreviousOffsetTonnes:         toFloat(y.PreviousOffsetTonnes),
		},
	}
}

func toSeriesResponses(series []emission.EmissionSeries) []EmissionSeriesResponse {
	out := make([]EmissionSeriesResponse, len(series))
	for i, s := range series {
		out[i] = EmissionSeriesResponse{
			CategoryType: string(s.CategoryType),
			Label:        s.CategoryType.Label(),
			Points:       toPointResponses(s.Points),
		}
	}
	return out
}

func toPointResponses(points []emission.EmissionPoint) []EmissionPointResponse {
	out := make([]EmissionPointResponse, len(points))
	for i, p := range points {
		out[i] = EmissionPointResponse{Period: p.Period, Emissions: toFloat(p.Emissions)}
	}
	return out
}

func toChartResponse(chart emission.ChartData) ChartResponse {
	datasets := make([]ChartDatasetResponse, len(chart.Datasets))
	for i, ds := range chart.Datasets {
		data := make([]float64, len(ds.Data))
		for j, p := range ds.Data {
			data[j] = toFloat(p.Emissions)
		}
		datasets[i] = ChartDatasetResponse{
			Label: ds.Label,
			Color: ds.Color,
			Kind:  string(ds.Kind),
			Axis:  ds.Axis,
			Data:  data,
		}
	}

	labels := chart.Labels
	if labels == nil {
		labels = []string{}
	}
	return ChartResponse{Labels: labels, Datasets: datasets}
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
