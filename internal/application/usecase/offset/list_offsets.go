// Package offset contains carbon offset purchase use cases.
package offset

import (
	"context"
	"fmt"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
)

// ListOffsetsUseCase handles listing an organization's offset purchases.
type ListOffsetsUseCase struct {
	offsetRepo adapter.OffsetPurchaseRepository
}

// NewListOffsetsUseCase creates a new ListOffsetsUseCase instance.
func NewListOffsetsUseCase(offsetRepo adapter.OffsetPurchaseRepository) *ListOffsetsUseCase {
	return &ListOffsetsUseCase{
		offsetRepo: offsetRepo,
	}
}

// Execute lists purchases newest first.
func (uc *ListOffsetsUseCase) Execute(ctx context.Context, organizationID string) ([]*entity.OffsetPurchase, error) {
	if organizationID == "" {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeMissingOrganization,
			"organization_id is required",
			domainerror.ErrMissingOrganization,
		)
	}

	purchases, err := uc.offsetRepo.FindByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offset purchases: %w", err)
	}
	return purchases, nil
}
