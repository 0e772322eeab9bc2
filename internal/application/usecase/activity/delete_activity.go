// Package activity contains activity record use cases.
package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
)

// DeleteActivityInput represents the input for activity deletion.
type DeleteActivityInput struct {
	OrganizationID string
	ActivityID     uuid.UUID
}

// DeleteActivityUseCase handles activity record deletion.
type DeleteActivityUseCase struct {
	activityRepo adapter.ActivityRecordRepository
	cache        adapter.RollupCache
}

// NewDeleteActivityUseCase creates a new DeleteActivityUseCase instance. cache may be nil.
func NewDeleteActivityUseCase(activityRepo adapter.ActivityRecordRepository, cache adapter.RollupCache) *DeleteActivityUseCase {
	return &DeleteActivityUseCase{
		activityRepo: activityRepo,
		cache:        cache,
	}
}

// Execute deletes a record owned by the organization.
func (uc *DeleteActivityUseCase) Execute(ctx context.Context, input DeleteActivityInput) error {
	if err := requireOrganization(input.OrganizationID); err != nil {
		return err
	}

	deleted, err := uc.activityRepo.Delete(ctx, input.OrganizationID, input.ActivityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity record: %w", err)
	}
	// Records of other organizations are reported as missing.
	if !deleted {
		return domainerror.NewEmissionError(
			domainerror.ErrCodeActivityNotFound,
			"activity record not found",
			domainerror.ErrActivityNotFound,
		)
	}

	emission.InvalidateRollups(ctx, uc.cache, input.OrganizationID)

	return nil
}
