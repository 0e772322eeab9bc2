// Package error defines domain-specific errors for the Carbonyx emission service.
package error

import (
	"errors"
	"fmt"
)

// Emission domain errors.
var (
	// ErrDataUnavailable is returned when the data store could not be reached or a query failed.
	ErrDataUnavailable = errors.New("emission data unavailable")

	// ErrInvalidInterval is returned when an interval starts after it ends.
	ErrInvalidInterval = errors.New("interval start must not be after end")

	// ErrMissingOrganization is returned when no organization identifier is supplied.
	ErrMissingOrganization = errors.New("organization_id is required")

	// ErrInvalidGranularity is returned when granularity is neither month nor year.
	ErrInvalidGranularity = errors.New("granularity must be: month or year")

	// ErrInvalidValue is returned when a quantity, factor or tonnage is negative.
	ErrInvalidValue = errors.New("value must be non-negative")

	// ErrInvalidDateFormat is returned when a period filter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrFactorNotFound is returned when an emission factor does not exist.
	ErrFactorNotFound = errors.New("emission factor not found")

	// ErrActivityNotFound is returned when an activity record does not exist for the organization.
	ErrActivityNotFound = errors.New("activity record not found")
)

// EmissionErrorCode defines error codes for emission errors.
// Format: EMS-XXYYYY where XX is category and YYYY is specific error.
type EmissionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingOrganization EmissionErrorCode = "EMS-010001"
	ErrCodeInvalidInterval     EmissionErrorCode = "EMS-010002"
	ErrCodeInvalidGranularity  EmissionErrorCode = "EMS-010003"
	ErrCodeInvalidValue        EmissionErrorCode = "EMS-010004"
	ErrCodeInvalidDateFormat   EmissionErrorCode = "EMS-010005"

	// Lookup errors (02XXXX)
	ErrCodeFactorNotFound   EmissionErrorCode = "EMS-020001"
	ErrCodeActivityNotFound EmissionErrorCode = "EMS-020002"

	// Throttling errors (98XXXX)
	ErrCodeRateLimited EmissionErrorCode = "EMS-980001"

	// Availability errors (99XXXX)
	ErrCodeDataUnavailable EmissionErrorCode = "EMS-990001"
)

// EmissionError represents an emission error with code and message.
type EmissionError struct {
	Code    EmissionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmissionError) Unwrap() error {
	return e.Err
}

// NewEmissionError creates a new EmissionError with the given code and message.
func NewEmissionError(code EmissionErrorCode, message string, err error) *EmissionError {
	return &EmissionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewDataUnavailableError wraps a data store failure. The cause is kept in the
// chain so both errors.Is(err, ErrDataUnavailable) and errors.Is(err, cause) hold.
func NewDataUnavailableError(operation string, cause error) *EmissionError {
	return &EmissionError{
		Code:    ErrCodeDataUnavailable,
		Message: operation,
		Err:     fmt.Errorf("%w: %w", ErrDataUnavailable, cause),
	}
}

// IsDataUnavailable reports whether err is a data store failure.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}
