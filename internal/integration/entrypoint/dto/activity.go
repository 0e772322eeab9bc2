// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/Chanakan5591/carbonyx/internal/application/usecase/activity"
)

// CreateActivityRequest represents the request body for logging an activity.
// Timestamp is RFC 3339; it defaults to now.
type CreateActivityRequest struct {
	FactorID  uint     `json:"factor_id" binding:"required"`
	Value     *float64 `json:"value" binding:"required"`
	Timestamp *string  `json:"timestamp,omitempty"`
}

// ActivityResponse represents an activity record in API responses.
type ActivityResponse struct {
	ID             string `json:"id"`
	FactorID       uint   `json:"factor_id"`
	CategoryType   string `json:"category_type"`
	CategoryLabel  string `json:"category_label"`
	Value          string `json:"value"`
	RecordedFactor string `json:"recorded_factor"`
	EmissionKg     string `json:"emission_kg"`
	Timestamp      string `json:"timestamp"`
	PeriodLabel    string `json:"period_label"`
}

// ListActivitiesResponse represents the response for listing activity records.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// ToActivityResponse converts use case output to a response.
func ToActivityResponse(output activity.ActivityOutput) ActivityResponse {
	record := output.Record
	return ActivityResponse{
		ID:             record.ID.String(),
		FactorID:       record.FactorID,
		CategoryType:   string(record.CategoryType),
		CategoryLabel:  output.CategoryLabel,
		Value:          record.Value.String(),
		RecordedFactor: record.RecordedFactor.String(),
		EmissionKg:     output.EmissionKg.StringFixed(2),
		Timestamp:      record.Timestamp.UTC().Format(time.RFC3339),
		PeriodLabel:    output.PeriodLabel,
	}
}

// ToListActivitiesResponse converts use case outputs to a response.
func ToListActivitiesResponse(outputs []activity.ActivityOutput) ListActivitiesResponse {
	activities := make([]ActivityResponse, len(outputs))
	for i, o := range outputs {
		activities[i] = ToActivityResponse(o)
	}
	return ListActivitiesResponse{Activities: activities}
}
