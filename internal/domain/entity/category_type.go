// Package entity defines the core business entities for the domain layer.
package entity

// CategoryType identifies the emission category an EmissionFactor belongs to.
// Unknown values are valid and pass through formatting unchanged so that
// factors added later keep working.
type CategoryType string

const (
	CategoryTypeElectricity          CategoryType = "electricity"
	CategoryTypeTransportation       CategoryType = "transportation"
	CategoryTypeStationaryCombustion CategoryType = "stationary_combustion"
	CategoryTypeWaste                CategoryType = "waste"
)

// Chart series labels that are not category types.
const (
	OffsetSeriesLabel = "Carbon Offset Purchases"
	GrossSeriesLabel  = "Gross Emissions"
	NetSeriesLabel    = "Net Emissions"
)

// DefaultSeriesColor is used for labels with no assigned color.
const DefaultSeriesColor = "rgba(0, 0, 0, 0.1)"

var categoryLabels = map[CategoryType]string{
	CategoryTypeElectricity:          "Electricity",
	CategoryTypeTransportation:       "Transportation",
	CategoryTypeStationaryCombustion: "Stationary Combustion",
	CategoryTypeWaste:                "Waste",
}

var seriesColors = map[string]string{
	"Electricity":           "rgba(75, 192, 192, 0.2)",
	"Transportation":        "rgba(255, 206, 86, 0.2)",
	"Stationary Combustion": "rgba(54, 162, 235, 0.2)",
	"Waste":                 "rgba(255, 99, 132, 0.2)",
	OffsetSeriesLabel:       "rgba(0, 128, 0, 0.2)",
	GrossSeriesLabel:        "rgba(255, 0, 0, 1)",
	NetSeriesLabel:          "rgba(0, 0, 0, 1)",
}

// IsKnown reports whether the category type has a display label.
func (c CategoryType) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label of the category type.
func (c CategoryType) Label() string {
	return FormatCategoryLabel(string(c))
}

// Color returns the chart color token of the category type.
func (c CategoryType) Color() string {
	return ColorFor(c.Label())
}

// FormatCategoryLabel maps a raw category code to its display label.
// Unknown codes are returned unchanged.
func FormatCategoryLabel(code string) string {
	if label, ok := categoryLabels[CategoryType(code)]; ok {
		return label
	}
	return code
}

// ColorFor returns a stable color token for a series label.
func ColorFor(label string) string {
	if color, ok := seriesColors[label]; ok {
		return color
	}
	return DefaultSeriesColor
}
