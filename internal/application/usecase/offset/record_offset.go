// Package offset contains carbon offset purchase use cases.
package offset

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

// RecordOffsetInput represents the input for recording an offset purchase.
type RecordOffsetInput struct {
	OrganizationID string
	Tco2e          decimal.Decimal
	PricePerTco2e  decimal.Decimal
	Timestamp      time.Time // zero means now
}

// RecordOffsetUseCase handles recording carbon offset purchases.
type RecordOffsetUseCase struct {
	offsetRepo adapter.OffsetPurchaseRepository
	cache      adapter.RollupCache
}

// NewRecordOffsetUseCase creates a new RecordOffsetUseCase instance. cache may be nil.
func NewRecordOffsetUseCase(offsetRepo adapter.OffsetPurchaseRepository, cache adapter.RollupCache) *RecordOffsetUseCase {
	return &RecordOffsetUseCase{
		offsetRepo: offsetRepo,
		cache:      cache,
	}
}

// Execute performs the offset purchase recording.
func (uc *RecordOffsetUseCase) Execute(ctx context.Context, input RecordOffsetInput) (*entity.OffsetPurchase, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	purchase := entity.NewOffsetPurchase(input.OrganizationID, input.Tco2e, input.PricePerTco2e, timestamp)
	if err := uc.offsetRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create offset purchase: %w", err)
	}

	emission.InvalidateRollups(ctx, uc.cache, input.OrganizationID)

	slog.Info("Offset purchase recorded",
		"organization_id", input.OrganizationID,
		"offset_id", purchase.ID,
		"tco2e", purchase.Tco2e.String(),
	)

	return purchase, nil
}

func validateInput(input RecordOffsetInput) error {
	if input.OrganizationID == "" {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeMissingOrganization,
			"organization_id is required",
			domainerror.ErrMissingOrganization,
		)
	}

	if input.Tco2e.IsNegative() {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeInvalidValue,
			"tco2e must be non-negative",
			domainerror.ErrInvalidValue,
		)
	}

	if input.PricePerTco2e.IsNegative() {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeInvalidValue,
			"price_per_tco2e must be non-negative",
			domainerror.ErrInvalidValue,
		)
	}

	return nil
}
