// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
)

// EmissionController handles emission rollup and factor catalogue endpoints.
type EmissionController struct {
	computeRollupUseCase *emission.ComputeRollupUseCase
	listFactorsUseCase   *emission.ListEmissionFactorsUseCase
	now                  func() time.Time
}

// NewEmissionController creates a new emission controller instance. now defaults to time.Now.
func NewEmissionController(
	computeRollupUseCase *emission.ComputeRollupUseCase,
	listFactorsUseCase *emission.ListEmissionFactorsUseCase,
	now func() time.Time,
) *EmissionController {
	if now == nil {
		now = time.Now
	}
	return &EmissionController{
		computeRollupUseCase: computeRollupUseCase,
		listFactorsUseCase:   listFactorsUseCase,
		now:                  now,
	}
}

// Rollup handles GET /emissions/rollup requests.
func (c *EmissionController) Rollup(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	result, err := c.computeRollupUseCase.Execute(ctx.Request.Context(), emission.ComputeRollupInput{
		OrganizationID: organizationID,
		Now:            c.now(),
	})
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRollupResponse(result))
}

// ListFactors handles GET /emission-factors requests.
func (c *EmissionController) ListFactors(ctx *gin.Context) {
	input := emission.ListEmissionFactorsInput{}
	if category := ctx.Query("category"); category != "" {
		categoryType := entity.CategoryType(category)
		input.CategoryType = &categoryType
	}

	outputs, err := c.listFactorsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListEmissionFactorsResponse(outputs))
}
