package query

import (
	"slices"

	"github.com/okian/statusboard/internal/domain/model"
)

// Facets lists the distinct filter values present in a collection.
type Facets struct {
	Models              []string            `json:"models"`
	Temperatures        []model.Temperature `json:"temperatures"`
	InvalidTemperatures bool                `json:"invalid_temperatures"`
}

// FacetsOf computes the model and temperature facets of responses.
func FacetsOf(responses []model.ModelResponse) Facets {
	return Facets{
		Models:              DistinctModels(responses),
		Temperatures:        DistinctTemperatures(responses),
		InvalidTemperatures: HasInvalidTemperatures(responses),
	}
}

// DistinctModels returns the model identifiers in responses, deduplicated and
// sorted lexicographically ascending.
func DistinctModels(responses []model.ModelResponse) []string {
	seen := make(map[string]struct{}, len(responses))
	out := make([]string, 0, len(responses))
	for _, r := range responses {
		if _, ok := seen[r.Model]; ok {
			continue
		}
		seen[r.Model] = struct{}{}
		out = append(out, r.Model)
	}
	slices.Sort(out)
	return out
}

// DistinctTemperatures returns the valid temperatures in responses,
// deduplicated and sorted ascending. Invalid temperatures are left out.
func DistinctTemperatures(responses []model.ModelResponse) []model.Temperature {
	seen := make(map[model.Temperature]struct{}, len(responses))
	out := make([]model.Temperature, 0, len(responses))
	for _, r := range responses {
		if !r.Temperature.Valid() {
			continue
		}
		if _, ok := seen[r.Temperature]; ok {
			continue
		}
		seen[r.Temperature] = struct{}{}
		out = append(out, r.Temperature)
	}
	slices.Sort(out)
	return out
}

// HasInvalidTemperatures reports whether any response carries an invalid temperature.
func HasInvalidTemperatures(responses []model.ModelResponse) bool {
	return slices.ContainsFunc(responses, func(r model.ModelResponse) bool {
		return !r.Temperature.Valid()
	})
}
