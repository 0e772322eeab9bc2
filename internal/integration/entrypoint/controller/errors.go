// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/middleware"
)

// dataUnavailableMessage is the user-facing message for store failures.
const dataUnavailableMessage = "Emission data unavailable, retry later"

// handleEmissionError maps emission errors to HTTP responses.
func handleEmissionError(ctx *gin.Context, err error) {
	var emsErr *domainerror.EmissionError
	if errors.As(err, &emsErr) {
		statusCode := getStatusCodeForEmissionError(emsErr.Code)
		message := emsErr.Message
		if emsErr.Code == domainerror.ErrCodeDataUnavailable {
			slog.Error("Emission data unavailable", "path", ctx.FullPath(), "error", err)
			message = dataUnavailableMessage
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: message,
			Code:  string(emsErr.Code),
		})
		return
	}

	slog.Error("Unhandled error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForEmissionError maps emission error codes to HTTP status codes.
func getStatusCodeForEmissionError(code domainerror.EmissionErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingOrganization,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidValue,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	case domainerror.ErrCodeFactorNotFound,
		domainerror.ErrCodeActivityNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeDataUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requireOrganization returns the authenticated organization or writes a 401.
func requireOrganization(ctx *gin.Context) (string, bool) {
	organizationID, ok := middleware.GetOrganizationIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Organization not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return organizationID, true
}
