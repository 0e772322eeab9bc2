package emission

import (
	"testing"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

func TestComputeGrossAndNet(t *testing.T) {
	series := []EmissionSeries{
		{CategoryType: entity.CategoryTypeElectricity, Points: []EmissionPoint{
			{Period: "2022", Emissions: dec("100")},
			{Period: "2024", Emissions: dec("50")},
		}},
		{CategoryType: entity.CategoryTypeTransportation, Points: []EmissionPoint{
			{Period: "2023", Emissions: dec("30.5")},
			{Period: "2024", Emissions: dec("20.25")},
		}},
		{CategoryType: entity.CategoryTypeWaste, Points: []EmissionPoint{
			{Period: "2024", Emissions: dec("4.75")},
		}},
	}
	offsets := []OffsetTotal{
		{Year: 2024, Tco2e: dec("0.01"), PricePerTco2e: dec("15")},
		{Year: 2021, Tco2e: dec("9"), PricePerTco2e: dec("15")},
	}

	tests := []struct {
		name          string
		offsets       []OffsetTotal
		granularity   valueobject.Granularity
		expectedGross []EmissionPoint
		expectedNet   []EmissionPoint
	}{
		{
			name:        "year granularity subtracts matching offsets",
			offsets:     offsets,
			granularity: valueobject.GranularityYear,
			expectedGross: []EmissionPoint{
				{Period: "2022", Emissions: dec("100")},
				{Period: "2023", Emissions: dec("30.5")},
				{Period: "2024", Emissions: dec("75")},
			},
			expectedNet: []EmissionPoint{
				{Period: "2022", Emissions: dec("100")},
				{Period: "2023", Emissions: dec("30.5")},
				{Period: "2024", Emissions: dec("65")},
			},
		},
		{
			name:        "year granularity without offsets",
			granularity: valueobject.GranularityYear,
			expectedGross: []EmissionPoint{
				{Period: "2022", Emissions: dec("100")},
				{Period: "2023", Emissions: dec("30.5")},
				{Period: "2024", Emissions: dec("75")},
			},
			expectedNet: []EmissionPoint{
				{Period: "2022", Emissions: dec("100")},
				{Period: "2023", Emissions: dec("30.5")},
				{Period: "2024", Emissions: dec("75")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, net := ComputeGrossAndNet(series, tt.offsets, tt.granularity)
			assertPoints(t, tt.expectedGross, gross)
			assertPoints(t, tt.expectedNet, net)
		})
	}
}

func TestComputeGrossAndNet_MonthNetEqualsGross(t *testing.T) {
	series := []EmissionSeries{
		{CategoryType: entity.CategoryTypeElectricity, Points: []EmissionPoint{
			{Period: "2024-01", Emissions: dec("10")},
			{Period: "2024-02", Emissions: dec("12")},
		}},
	}
	offsets := []OffsetTotal{{Year: 2024, Tco2e: dec("5")}}

	gross, net := ComputeGrossAndNet(series, offsets, valueobject.GranularityMonth)

	assertPoints(t, gross, net)
}

func TestComputeGrossAndNet_NetCanGoNegative(t *testing.T) {
	series := []EmissionSeries{
		{CategoryType: entity.CategoryTypeWaste, Points: []EmissionPoint{{Period: "2024", Emissions: dec("400")}}},
	}

	_, net := ComputeGrossAndNet(series, []OffsetTotal{{Year: 2024, Tco2e: dec("1")}}, valueobject.GranularityYear)

	assertPoints(t, []EmissionPoint{{Period: "2024", Emissions: dec("-600")}}, net)
}

func TestComputeGrossAndNet_Empty(t *testing.T) {
	gross, net := ComputeGrossAndNet(nil, nil, valueobject.GranularityMonth)
	if len(gross) != 0 || len(net) != 0 {
		t.Errorf("expected empty series, got gross=%v net=%v", gross, net)
	}
}

func TestKgToTonnes(t *testing.T) {
	tests := []struct {
		kg       string
		expected string
	}{
		{"12345.678", "12.35"},
		{"0", "0"},
		{"5", "0.01"},
		{"4.999", "0"},
		{"-5", "0"},
		{"-5.001", "-0.01"},
		{"1000", "1"},
		{"12345", "12.35"},
		{"-12345", "-12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.kg, func(t *testing.T) {
			got := KgToTonnes(dec(tt.kg))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("KgToTonnes(%s) = %s, expected %s", tt.kg, got, tt.expected)
			}
		})
	}
}

func TestRoundHalfUp_TiesGoTowardPositiveInfinity(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"12.345", "12.35"},
		{"-12.345", "-12.34"},
		{"-12.3451", "-12.35"},
		{"-0.005", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := RoundHalfUp(dec(tt.value), 2); !got.Equal(dec(tt.expected)) {
				t.Errorf("RoundHalfUp(%s, 2) = %s, expected %s", tt.value, got, tt.expected)
			}
		})
	}
}
