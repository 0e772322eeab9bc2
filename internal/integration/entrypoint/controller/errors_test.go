package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
)

func TestHandleEmissionError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "data unavailable",
			err:             fmt.Errorf("failed to list: %w", domainerror.NewDataUnavailableError("failed to query activity records", errors.New("dial tcp: refused"))),
			expectedStatus:  http.StatusServiceUnavailable,
			expectedCode:    "EMS-990001",
			expectedMessage: "Emission data unavailable, retry later",
		},
		{
			name:            "invalid interval",
			err:             domainerror.NewEmissionError(domainerror.ErrCodeInvalidInterval, "interval start must not be after end", domainerror.ErrInvalidInterval),
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    "EMS-010002",
			expectedMessage: "interval start must not be after end",
		},
		{
			name:            "factor not found",
			err:             domainerror.NewEmissionError(domainerror.ErrCodeFactorNotFound, "emission factor 9 not found", domainerror.ErrFactorNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedCode:    "EMS-020001",
			expectedMessage: "emission factor 9 not found",
		},
		{
			name:            "unclassified",
			err:             errors.New("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleEmissionError(ctx, tt.err)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != tt.expectedCode || body.Error != tt.expectedMessage {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}
