// Package emission contains the emission aggregation and rollup use cases.
package emission

import (
	"context"
	"sort"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
)

// ListEmissionFactorsInput represents the input for listing emission factors.
type ListEmissionFactorsInput struct {
	CategoryType *entity.CategoryType
}

// FactorOutput is an emission factor with its display label.
type FactorOutput struct {
	Factor        *entity.EmissionFactor
	CategoryLabel string
}

// ListEmissionFactorsUseCase handles listing the emission factor catalogue.
type ListEmissionFactorsUseCase struct {
	store adapter.EmissionDataStore
}

// NewListEmissionFactorsUseCase creates a new ListEmissionFactorsUseCase instance.
func NewListEmissionFactorsUseCase(store adapter.EmissionDataStore) *ListEmissionFactorsUseCase {
	return &ListEmissionFactorsUseCase{
		store: store,
	}
}

// Execute lists factors ordered by category then name, optionally for one category.
func (uc *ListEmissionFactorsUseCase) Execute(ctx context.Context, input ListEmissionFactorsInput) ([]FactorOutput, error) {
	factors, err := uc.store.QueryEmissionFactors(ctx)
	if err != nil {
		return nil, asDataUnavailable("failed to query emission factors", err)
	}

	outputs := make([]FactorOutput, 0, len(factors))
	for _, factor := range factors {
		if input.CategoryType != nil && factor.CategoryType != *input.CategoryType {
			continue
		}
		outputs = append(outputs, FactorOutput{
			Factor:        factor,
			CategoryLabel: factor.CategoryType.Label(),
		})
	}

	sort.SliceStable(outputs, func(i, j int) bool {
		a, b := outputs[i].Factor, outputs[j].Factor
		if a.CategoryType != b.CategoryType {
			return a.CategoryType < b.CategoryType
		}
		return a.Name < b.Name
	})

	return outputs, nil
}
