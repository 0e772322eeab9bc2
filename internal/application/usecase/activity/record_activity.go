// Package activity contains activity record use cases.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
)

// RecordActivityInput represents the input for logging an activity.
type RecordActivityInput struct {
	OrganizationID string
	FactorID       uint
	Value          decimal.Decimal
	Timestamp      time.Time // zero means now
}

// RecordActivityUseCase handles logging a new activity record.
type RecordActivityUseCase struct {
	activityRepo adapter.ActivityRecordRepository
	factorRepo   adapter.EmissionFactorRepository
	cache        adapter.RollupCache
	location     *time.Location
}

// NewRecordActivityUseCase creates a new RecordActivityUseCase instance. cache may be nil.
func NewRecordActivityUseCase(
	activityRepo adapter.ActivityRecordRepository,
	factorRepo adapter.EmissionFactorRepository,
	cache adapter.RollupCache,
	location *time.Location,
) *RecordActivityUseCase {
	if location == nil {
		location = time.UTC
	}
	return &RecordActivityUseCase{
		activityRepo: activityRepo,
		factorRepo:   factorRepo,
		cache:        cache,
		location:     location,
	}
}

// Execute stores the record with the factor value currently in effect.
func (uc *RecordActivityUseCase) Execute(ctx context.Context, input RecordActivityInput) (*ActivityOutput, error) {
	if err := requireOrganization(input.OrganizationID); err != nil {
		return nil, err
	}

	if input.Value.IsNegative() {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeInvalidValue,
			"value must be non-negative",
			domainerror.ErrInvalidValue,
		)
	}

	factor, err := uc.factorRepo.FindByID(ctx, input.FactorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find emission factor: %w", err)
	}
	if factor == nil {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeFactorNotFound,
			fmt.Sprintf("emission factor %d not found", input.FactorID),
			domainerror.ErrFactorNotFound,
		)
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	record := entity.NewActivityRecord(input.OrganizationID, factor, input.Value, timestamp)
	if err := uc.activityRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create activity record: %w", err)
	}

	emission.InvalidateRollups(ctx, uc.cache, input.OrganizationID)

	slog.Info("Activity recorded",
		"organization_id", input.OrganizationID,
		"activity_id", record.ID,
		"factor_id", factor.ID,
	)

	output := toActivityOutput(record, uc.location)
	return &output, nil
}
