// Package activity contains activity record use cases.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/domain/valueobject"
)

// ListActivitiesInput represents the input for listing activity records.
// Month ("YYYY-MM") takes precedence over Year ("YYYY") when both are set.
type ListActivitiesInput struct {
	OrganizationID string
	CategoryType   *entity.CategoryType
	Month          string
	Year           string
}

// ListActivitiesUseCase handles listing an organization's activity records.
type ListActivitiesUseCase struct {
	activityRepo adapter.ActivityRecordRepository
	location     *time.Location
}

// NewListActivitiesUseCase creates a new ListActivitiesUseCase instance.
func NewListActivitiesUseCase(activityRepo adapter.ActivityRecordRepository, location *time.Location) *ListActivitiesUseCase {
	if location == nil {
		location = time.UTC
	}
	return &ListActivitiesUseCase{
		activityRepo: activityRepo,
		location:     location,
	}
}

// Execute lists records newest first.
func (uc *ListActivitiesUseCase) Execute(ctx context.Context, input ListActivitiesInput) ([]ActivityOutput, error) {
	if err := requireOrganization(input.OrganizationID); err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(input)
	if err != nil {
		return nil, err
	}

	records, err := uc.activityRepo.FindByOrganization(ctx, input.OrganizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity records: %w", err)
	}

	outputs := make([]ActivityOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, toActivityOutput(record, uc.location))
	}
	return outputs, nil
}

func (uc *ListActivitiesUseCase) buildFilter(input ListActivitiesInput) (adapter.ActivityFilter, error) {
	filter := adapter.ActivityFilter{CategoryType: input.CategoryType}

	var period *valueobject.TimeRange
	switch {
	case input.Month != "":
		date, err := time.ParseInLocation("2006-01", input.Month, uc.location)
		if err != nil {
			return filter, invalidDateFormat("month must be in YYYY-MM format", err)
		}
		r := valueobject.MonthRange(date)
		period = &r
	case input.Year != "":
		date, err := time.ParseInLocation("2006", input.Year, uc.location)
		if err != nil {
			return filter, invalidDateFormat("year must be in YYYY format", err)
		}
		r := valueobject.YearRange(date)
		period = &r
	}

	if period != nil {
		start, end := period.StartUnix(), period.EndUnix()
		filter.StartSeconds = &start
		filter.EndSeconds = &end
	}
	return filter, nil
}

func invalidDateFormat(message string, err error) error {
	return domainerror.NewEmissionError(
		domainerror.ErrCodeInvalidDateFormat,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrInvalidDateFormat, err),
	)
}
