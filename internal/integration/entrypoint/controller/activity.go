// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/activity"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	domainerror "github.com/Chanakan5591/carbonyx/internal/domain/error"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
)

// ActivityController handles activity record endpoints.
type ActivityController struct {
	recordUseCase *activity.RecordActivityUseCase
	listUseCase   *activity.ListActivitiesUseCase
	deleteUseCase *activity.DeleteActivityUseCase
}

// NewActivityController creates a new activity controller instance.
func NewActivityController(
	recordUseCase *activity.RecordActivityUseCase,
	listUseCase *activity.ListActivitiesUseCase,
	deleteUseCase *activity.DeleteActivityUseCase,
) *ActivityController {
	return &ActivityController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /activities requests.
func (c *ActivityController) Create(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
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

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), activity.RecordActivityInput{
		OrganizationID: organizationID,
		FactorID:       req.FactorID,
		Value:          decimal.NewFromFloat(*req.Value),
		Timestamp:      timestamp,
	})
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToActivityResponse(*output))
}

// List handles GET /activities requests.
func (c *ActivityController) List(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	input := activity.ListActivitiesInput{
		OrganizationID: organizationID,
		Month:          ctx.Query("month"),
		Year:           ctx.Query("year"),
	}
	if category := ctx.Query("category"); category != "" {
		categoryType := entity.CategoryType(category)
		input.CategoryType = &categoryType
	}

	outputs, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToListActivitiesResponse(outputs))
}

// Delete handles DELETE /activities/:id requests.
func (c *ActivityController) Delete(ctx *gin.Context) {
	organizationID, ok := requireOrganization(ctx)
	if !ok {
		return
	}

	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid activity ID format",
		})
		return
	}

	err = c.deleteUseCase.Execute(ctx.Request.Context(), activity.DeleteActivityInput{
		OrganizationID: organizationID,
		ActivityID:     activityID,
	})
	if err != nil {
		handleEmissionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseTimestamp parses an optional RFC 3339 timestamp, writing a 400 on failure.
// A nil or empty value yields the zero time.
func parseTimestamp(ctx *gin.Context, value *string) (time.Time, bool) {
	if value == nil || *value == "" {
		return time.Time{}, true
	}

	timestamp, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid timestamp format. Use RFC 3339",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return time.Time{}, false
	}
	return timestamp, true
}
