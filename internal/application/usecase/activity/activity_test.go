package activity

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
)

type memoryActivityRepo struct {
	records    []*entity.ActivityRecord
	lastFilter adapter.ActivityFilter
	err        error
}

func (r *memoryActivityRepo) Create(ctx context.Context, record *entity.ActivityRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memoryActivityRepo) FindByOrganization(ctx context.Context, organizationID string, filter adapter.ActivityFilter) ([]*entity.ActivityRecord, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}

	var out []*entity.ActivityRecord
	for _, record := range r.records {
		ts := record.Timestamp.Unix()
		switch {
		case record.OrganizationID != organizationID:
			continue
		case filter.CategoryType != nil && record.CategoryType != *filter.CategoryType:
			continue
		case filter.StartSeconds != nil && ts < *filter.StartSeconds:
			continue
		case filter.EndSeconds != nil && ts > *filter.EndSeconds:
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *memoryActivityRepo) Delete(ctx context.Context, organizationID string, id uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for i, record := range r.records {
		if record.ID == id && record.OrganizationID == organizationID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memoryFactorRepo struct {
	factors map[uint]*entity.EmissionFactor
}

func (r *memoryFactorRepo) FindByID(ctx context.Context, id uint) (*entity.EmissionFactor, error) {
	return r.factors[id], nil
}

type countingCache struct {
	invalidated []string
}

func (c *countingCache) Generation(ctx context.Context, organizationID string) (int64, error) {
	return 0, nil
}

func (c *countingCache) Get(ctx context.Context, organizationID, key string) ([]byte, error) {
	return nil, nil
}

func (c *countingCache) Set(ctx context.Context, organizationID, key string, payload []byte) error {
	return nil
}

func (c *countingCache) Invalidate(ctx context.Context, organizationID string) error {
	c.invalidated = append(c.invalidated, organizationID)
	return nil
}

var gridElectricity = &entity.EmissionFactor{
	ID:           1,
	Name:         "Grid electricity",
	CategoryType: entity.CategoryTypeElectricity,
	Unit:         "kWh",
	FactorValue:  decimal.RequireFromString("0.5"),
}

func TestRecordActivity(t *testing.T) {
	factor := *gridElectricity
	factors := &memoryFactorRepo{factors: map[uint]*entity.EmissionFactor{1: &factor}}

	tests := []struct {
		name         string
		input        RecordActivityInput
		expectedCode domainerror.EmissionErrorCode
	}{
		{
			name:  "valid record",
			input: RecordActivityInput{OrganizationID: "org_1", FactorID: 1, Value: decimal.RequireFromString("100.004")},
		},
		{
			name:         "missing organization",
			input:        RecordActivityInput{FactorID: 1, Value: decimal.NewFromInt(1)},
			expectedCode: domainerror.ErrCodeMissingOrganization,
		},
		{
			name:         "negative value",
			input:        RecordActivityInput{OrganizationID: "org_1", FactorID: 1, Value: decimal.NewFromInt(-1)},
			expectedCode: domainerror.ErrCodeInvalidValue,
		},
		{
			name:         "unknown factor",
			input:        RecordActivityInput{OrganizationID: "org_1", FactorID: 42, Value: decimal.NewFromInt(1)},
			expectedCode: domainerror.ErrCodeFactorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryActivityRepo{}
			cache := &countingCache{}
			uc := NewRecordActivityUseCase(repo, factors, cache, nil)

			output, err := uc.Execute(context.Background(), tt.input)

			if tt.expectedCode != "" {
				var emsErr *domainerror.EmissionError
				if !errors.As(err, &emsErr) || emsErr.Code != tt.expectedCode {
					t.Fatalf("expected code %s, got %v", tt.expectedCode, err)
				}
				if len(repo.records) != 0 || len(cache.invalidated) != 0 {
					t.Error("expected nothing stored or invalidated")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.records) != 1 {
				t.Fatalf("expected 1 stored record, got %d", len(repo.records))
			}
			if !output.EmissionKg.Equal(decimal.RequireFromString("50")) {
				t.Errorf("expected emission 50, got %s", output.EmissionKg)
			}
			if output.CategoryLabel != "Electricity" {
				t.Errorf("expected Electricity label, got %s", output.CategoryLabel)
			}
			if len(cache.invalidated) != 1 || cache.invalidated[0] != "org_1" {
				t.Errorf("expected org_1 rollups invalidated, got %v", cache.invalidated)
			}
		})
	}
}

func TestRecordActivity_FactorRevisionDoesNotRewriteHistory(t *testing.T) {
	factor := *gridElectricity
	repo := &memoryActivityRepo{}
	uc := NewRecordActivityUseCase(repo, &memoryFactorRepo{factors: map[uint]*entity.EmissionFactor{1: &factor}}, nil, nil)

	_, err := uc.Execute(context.Background(), RecordActivityInput{
		OrganizationID: "org_1",
		FactorID:       1,
		Value:          decimal.NewFromInt(10),
		Timestamp:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	factor.FactorValue = decimal.NewFromInt(9)

	if got := repo.records[0].Emission(); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected stored emission 5, got %s", got)
	}
}

func TestListActivities(t *testing.T) {
	waste := entity.CategoryTypeWaste
	repo := &memoryActivityRepo{records: []*entity.ActivityRecord{
		{ID: uuid.New(), OrganizationID: "org_1", CategoryType: entity.CategoryTypeElectricity, Value: decimal.NewFromInt(3), RecordedFactor: decimal.RequireFromString("0.3333"), Timestamp: time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), OrganizationID: "org_1", CategoryType: entity.CategoryTypeWaste, Value: decimal.NewFromInt(2), RecordedFactor: decimal.NewFromInt(1), Timestamp: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), OrganizationID: "org_1", CategoryType: entity.CategoryTypeWaste, Value: decimal.NewFromInt(1), RecordedFactor: decimal.NewFromInt(1), Timestamp: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), OrganizationID: "org_2", CategoryType: entity.CategoryTypeWaste, Value: decimal.NewFromInt(1), RecordedFactor: decimal.NewFromInt(1), Timestamp: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}}
	uc := NewListActivitiesUseCase(repo, time.UTC)

	tests := []struct {
		name          string
		input         ListActivitiesInput
		expectedCount int
	}{
		{"all records", ListActivitiesInput{OrganizationID: "org_1"}, 3},
		{"by month", ListActivitiesInput{OrganizationID: "org_1", Month: "2024-03"}, 1},
		{"by year", ListActivitiesInput{OrganizationID: "org_1", Year: "2024"}, 2},
		{"by category", ListActivitiesInput{OrganizationID: "org_1", CategoryType: &waste}, 2},
		{"month wins over year", ListActivitiesInput{OrganizationID: "org_1", Month: "2024-04", Year: "2023"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := uc.Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(outputs) != tt.expectedCount {
				t.Errorf("expected %d records, got %d", tt.expectedCount, len(outputs))
			}
		})
	}

	t.Run("month filter uses inclusive month range", func(t *testing.T) {
		outputs, err := uc.Execute(context.Background(), ListActivitiesInput{OrganizationID: "org_1", Month: "2024-03"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outputs[0].PeriodLabel != "Mar 2024" {
			t.Errorf("expected Mar 2024, got %s", outputs[0].PeriodLabel)
		}
		if !outputs[0].EmissionKg.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected rounded emission 1, got %s", outputs[0].EmissionKg)
		}
		if *repo.lastFilter.EndSeconds != time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC).Unix() {
			t.Errorf("unexpected end bound %d", *repo.lastFilter.EndSeconds)
		}
	})
}

func TestListActivities_InvalidFilters(t *testing.T) {
	uc := NewListActivitiesUseCase(&memoryActivityRepo{}, nil)

	for _, input := range []ListActivitiesInput{
		{OrganizationID: "org_1", Month: "2024-13"},
		{OrganizationID: "org_1", Month: "March"},
		{OrganizationID: "org_1", Year: "24"},
	} {
		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidDateFormat) {
			t.Errorf("input %+v: expected invalid date format, got %v", input, err)
		}
	}
}

func TestDeleteActivity(t *testing.T) {
	id := uuid.New()
	newRepo := func() *memoryActivityRepo {
		return &memoryActivityRepo{records: []*entity.ActivityRecord{{ID: id, OrganizationID: "org_1"}}}
	}

	t.Run("deletes own record", func(t *testing.T) {
		repo, cache := newRepo(), &countingCache{}
		err := NewDeleteActivityUseCase(repo, cache).Execute(context.Background(), DeleteActivityInput{OrganizationID: "org_1", ActivityID: id})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.records) != 0 {
			t.Error("expected record removed")
		}
		if len(cache.invalidated) != 1 {
			t.Error("expected rollups invalidated")
		}
	})

	t.Run("other organization sees not found", func(t *testing.T) {
		repo, cache := newRepo(), &countingCache{}
		err := NewDeleteActivityUseCase(repo, cache).Execute(context.Background(), DeleteActivityInput{OrganizationID: "org_2", ActivityID: id})
		if !errors.Is(err, domainerror.ErrActivityNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if len(repo.records) != 1 || len(cache.invalidated) != 0 {
			t.Error("expected nothing deleted or invalidated")
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newRepo()
		repo.err = errors.New("db down")
		err := NewDeleteActivityUseCase(repo, nil).Execute(context.Background(), DeleteActivityInput{OrganizationID: "org_1", ActivityID: id})
		if err == nil || errors.Is(err, domainerror.ErrActivityNotFound) {
			t.Errorf("expected repository error, got %v", err)
		}
	})
}
