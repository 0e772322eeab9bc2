// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// ActivityFilter narrows an activity record listing.
type ActivityFilter struct {
	CategoryType *entity.CategoryType
	StartSeconds *int64
	EndSeconds   *int64
}

// ActivityRecordRepository defines the interface for activity record persistence operations.
type ActivityRecordRepository interface {
	// Create stores a new activity record.
	Create(ctx context.Context, record *entity.ActivityRecord) error

	// FindByOrganization lists an organization's records, newest first.
	FindByOrganization(ctx context.Context, organizationID string, filter ActivityFilter) ([]*entity.ActivityRecord, error)

	// Delete removes a record owned by the organization. Returns false when no such record exists.
	Delete(ctx context.Context, organizationID string, id uuid.UUID) (bool, error)
}

// EmissionFactorRepository defines the interface for emission factor lookups.
type EmissionFactorRepository interface {
	// FindByID retrieves a factor by its ID. Returns nil when not found.
	FindByID(ctx context.Context, id uint) (*entity.EmissionFactor, error)
}
