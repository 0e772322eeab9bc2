// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// CreateOffsetRequest represents the request body for recording an offset purchase.
// Timestamp is RFC 3339; it defaults to now.
type CreateOffsetRequest struct {
	Tco2e         *float64 `json:"tco2e" binding:"required"`
	PricePerTco2e *float64 `json:"price_per_tco2e" binding:"required"`
	Timestamp     *string  `json:"timestamp,omitempty"`
}

// OffsetResponse represents an offset purchase in API responses.
type OffsetResponse struct {
	ID            string `json:"id"`
	Tco2e         string `json:"tco2e"`
	PricePerTco2e string `json:"price_per_tco2e"`
	Timestamp     string `json:"timestamp"`
	CreatedAt     string `json:"created_at"`
}

// ListOffsetsResponse represents the response for listing offset purchases.
type ListOffsetsResponse struct {
	Offsets []OffsetResponse `json:"offsets"`
}

// ToOffsetResponse converts an OffsetPurchase entity to a response.
func ToOffsetResponse(purchase *entity.OffsetPurchase) OffsetResponse {
	return OffsetResponse{
		ID:            purchase.ID.String(),
		Tco2e:         purchase.Tco2e.String(),
		PricePerTco2e: purchase.PricePerTco2e.StringFixed(2),
		Timestamp:     purchase.Timestamp.UTC().Format(time.RFC3339),
		CreatedAt:     purchase.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToListOffsetsResponse converts OffsetPurchase entities to a response.
func ToListOffsetsResponse(purchases []*entity.OffsetPurchase) ListOffsetsResponse {
	offsets := make([]OffsetResponse, len(purchases))
	for i, p := range purchases {
		offsets[i] = ToOffsetResponse(p)
	}
	return ListOffsetsResponse{Offsets: offsets}
}
