// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"

// EmissionFactorResponse represents an emission factor in API responses.
type EmissionFactorResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	CategoryType  string `json:"category_type"`
	CategoryLabel string `json:"category_label"`
	SubType       string `json:"sub_type"`
	Unit          string `json:"unit"`
	FactorValue   string `json:"factor_value"`
}

// ListEmissionFactorsResponse represents the response for listing emission factors.
type ListEmissionFactorsResponse struct {
	Factors []EmissionFactorResponse `json:"factors"`
}

// ToListEmissionFactorsResponse converts use case output to a response.
func ToListEmissionFactorsResponse(outputs []emission.FactorOutput) ListEmissionFactorsResponse {
	factors := make([]EmissionFactorResponse, len(outputs))
	for i, o := range outputs {
		factors[i] = EmissionFactorResponse{
			ID:            o.Factor.ID,
			Name:          o.Factor.Name,
			CategoryType:  string(o.Factor.CategoryType),
			CategoryLabel: o.CategoryLabel,
			SubType:       o.Factor.SubType,
			Unit:          o.Factor.Unit,
			FactorValue:   o.Factor.FactorValue.String(),
		}
	}
	return ListEmissionFactorsResponse{Factors: factors}
}
