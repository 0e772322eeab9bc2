// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// OffsetPurchaseRepository defines the interface for offset purchase persistence operations.
type OffsetPurchaseRepository interface {
	// Create stores a new offset purchase.
	Create(ctx context.Context, purchase *entity.OffsetPurchase) error

	// FindByOrganization lists an organization's purchases, newest first.
	FindByOrganization(ctx context.Context, organizationID string) ([]*entity.OffsetPurchase, error)
}
