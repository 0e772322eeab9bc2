// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// RollupCache stores serialized rollups per organization.
// A miss is reported as (nil, nil).
type RollupCache interface {
	// Generation returns the organization's invalidation counter. Keys built from an
	// older generation are never read again once Invalidate has advanced it.
	Generation(ctx context.Context, organizationID string) (int64, error)

	// Get returns the cached payload stored under key for the organization.
	Get(ctx context.Context, organizationID, key string) ([]byte, error)

	// Set stores a payload under key for the organization.
	Set(ctx context.Context, organizationID, key string, payload []byte) error

	// Invalidate advances the organization's generation and drops its cached payloads.
	Invalidate(ctx context.Context, organizationID string) error
}
