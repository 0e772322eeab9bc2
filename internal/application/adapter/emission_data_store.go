// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// EmissionDataStore is the read-only data store consumed by the emission core.
// Implementations report every failure as a data-unavailable domain error.
type EmissionDataStore interface {
	// QueryActivityRecords returns the organization's activity records whose timestamp lies
	// in the closed interval [startSeconds, endSeconds], joined with their factor's category type.
	QueryActivityRecords(ctx context.Context, organizationID string, startSeconds, endSeconds int64) ([]*entity.ActivityRecord, error)

	// QueryOffsetPurchases returns the organization's offset purchases within [startSeconds, endSeconds].
	QueryOffsetPurchases(ctx context.Context, organizationID string, startSeconds, endSeconds int64) ([]*entity.OffsetPurchase, error)

	// QueryEmissionFactors returns every emission factor.
	QueryEmissionFactors(ctx context.Context) ([]*entity.EmissionFactor, error)
}
