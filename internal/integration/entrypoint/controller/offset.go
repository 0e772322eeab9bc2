// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/offset"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
)

// OffsetController handles carbon offset purchase endpoints.
type OffsetController struct {
	recordUseCase *offset.RecordOffsetUseCase
	listUseCase   *offset.ListOffsetsUseCase
}

// NewOffsetController creates a new offset controller instance.
func NewOffsetController(recordUseCase *offset.RecordOffsetUseCase, listUseCase *offset.ListOffsetsUseCase) *OffsetController {
	return &OffsetController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /offsets requests.
func (c *OffsetController) Create(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	var req dto.CreateOffsetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidValue),
		})
		return
	}

	timestamp, ok := parseTimestamp(ctx, req.Timestamp)
	if !ok {
		return
	}

	purchase, err := c.recordUseCase.Execute(ctx.Request.Context(), offset.RecordOffsetInput{
		OrganizationID: organizationID,
		Tco2e:          decimal.NewFromFloat(*req.Tco2e),
		PricePerTco2e:  decimal.NewFromFloat(*req.PricePerTco2e),
		Timestamp:      timestamp,
	})
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOffsetResponse(purchase))
}

// List handles GET /offsets requests.
func (c *OffsetController) List(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	purchases, err := c.listUseCase.Execute(ctx.Request.Context(), organizationID)
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListOffsetsResponse(purchases))
}
