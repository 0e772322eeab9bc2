package emission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

func TestEmissionAggregator_Aggregate(t *testing.T) {
	store := &fakeDataStore{
		records: []*entity.ActivityRecord{
			record("org_1", entity.CategoryTypeWaste, "10", "2", date(2024, time.April, 2)),
			record("org_1", entity.CategoryTypeElectricity, "100", "0.5", date(2024, time.March, 3)),
			record("org_1", entity.CategoryTypeElectricity, "20", "0.5", date(2024, time.March, 28)),
			record("org_1", entity.CategoryTypeElectricity, "4", "0.25", date(2023, time.December, 31)),
			record("org_2", entity.CategoryTypeElectricity, "999", "1", date(2024, time.March, 3)),
		},
	}
	aggregator := NewEmissionAggregator(store, time.UTC)
	window := valueobject.LastNYearsRange(date(2024, time.June, 1), 5)

	t.Run("groups by category and month", func(t *testing.T) {
		series, err := aggregator.Aggregate(context.Background(), "org_1", window.StartUnix(), window.EndUnix(), valueobject.GranularityMonth)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(series) != 2 {
			t.Fatalf("expected 2 series, got %d", len(series))
		}

		electricity := series[0]
		if electricity.CategoryType != entity.CategoryTypeElectricity {
			t.Fatalf("expected electricity first, got %s", electricity.CategoryType)
		}
		expected := []EmissionPoint{
			{Period: "2023-12", Emissions: dec("1")},
			{Period: "2024-03", Emissions: dec("60")},
		}
		assertPoints(t, expected, electricity.Points)

		assertPoints(t, []EmissionPoint{{Period: "2024-04", Emissions: dec("20")}}, series[1].Points)
	})

	t.Run("groups by year", func(t *testing.T) {
		series, err := aggregator.Aggregate(context.Background(), "org_1", window.StartUnix(), window.EndUnix(), valueobject.GranularityYear)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertPoints(t, []EmissionPoint{
			{Period: "2023", Emissions: dec("1")},
			{Period: "2024", Emissions: dec("60")},
		}, series[0].Points)
	})

	t.Run("buckets in the configured location", func(t *testing.T) {
		bangkok := time.FixedZone("ICT", 7*60*60)
		late := &fakeDataStore{records: []*entity.ActivityRecord{
			record("org_1", entity.CategoryTypeWaste, "1", "1", time.Date(2023, time.December, 31, 20, 0, 0, 0, time.UTC)),
		}}
		local := NewEmissionAggregator(late, bangkok)

		series, err := local.Aggregate(context.Background(), "org_1", window.StartUnix(), window.EndUnix(), valueobject.GranularityMonth)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertPoints(t, []EmissionPoint{{Period: "2024-01", Emissions: dec("1")}}, series[0].Points)
	})

	t.Run("empty organization yields no series", func(t *testing.T) {
		series, err := aggregator.Aggregate(context.Background(), "org_empty", window.StartUnix(), window.EndUnix(), valueobject.GranularityMonth)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(series) != 0 {
			t.Errorf("expected no series, got %d", len(series))
		}
	})
}

func TestEmissionAggregator_Validation(t *testing.T) {
	tests := []struct {
		name         string
		organization string
		start, end   int64
		granularity  valueobject.Granularity
		expectedCode domainerror.EmissionErrorCode
	}{
		{"missing organization", "", 0, 10, valueobject.GranularityMonth, domainerror.ErrCodeMissingOrganization},
		{"inverted interval", "org_1", 10, 0, valueobject.GranularityMonth, domainerror.ErrCodeInvalidInterval},
		{"unknown granularity", "org_1", 0, 10, valueobject.Granularity("week"), domainerror.ErrCodeInvalidGranularity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeDataStore{}
			aggregator := NewEmissionAggregator(store, nil)

			_, err := aggregator.Aggregate(context.Background(), tt.organization, tt.start, tt.end, tt.granularity)

			var emsErr *domainerror.EmissionError
			if !errors.As(err, &emsErr) {
				t.Fatalf("expected EmissionError, got %v", err)
			}
			if emsErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, emsErr.Code)
			}
			if store.calls.Load() != 0 {
				t.Error("expected store not to be queried")
			}
		})
	}
}

func TestEmissionAggregator_StoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	aggregator := NewEmissionAggregator(&fakeDataStore{err: cause}, nil)

	_, err := aggregator.Aggregate(context.Background(), "org_1", 0, 100, valueobject.GranularityYear)

	if !domainerror.IsDataUnavailable(err) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to stay in the error chain")
	}
}

func assertPoints(t *testing.T, expected, actual []EmissionPoint) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("expected %d points, got %d: %v", len(expected), len(actual), actual)
	}
	for i := range expected {
		if expected[i].Period != actual[i].Period {
			t.Errorf("point %d: expected period %s, got %s", i, expected[i].Period, actual[i].Period)
		}
		if !expected[i].Emissions.Equal(actual[i].Emissions) {
			t.Errorf("point %d (%s): expected %s, got %s", i, expected[i].Period, expected[i].Emissions, actual[i].Emissions)
		}
	}
}
