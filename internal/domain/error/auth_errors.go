// Package error defines domain-specific errors for the Carbonyx emission service.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingOrganizationClaim is returned when a valid token carries no organization.
	ErrMissingOrganizationClaim = errors.New("token has no organization claim")
)

// AuthErrorCode defines error codes for authentication errors.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)
