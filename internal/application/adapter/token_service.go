// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in an access token issued by the auth provider.
type TokenClaims struct {
	Subject        string
	OrganizationID string
	ExpiresAt      time.Time
}

// TokenService defines the interface for access token validation.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
