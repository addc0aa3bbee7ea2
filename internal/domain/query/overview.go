package query

import "github.com/okian/statusboard/internal/domain/model"

// OverviewResult is the headline view of a collection.
type OverviewResult struct {
	Responses           int                 `json:"responses"`
	Items               int                 `json:"items"`
	Models              []string            `json:"models"`
	Temperatures        []model.Temperature `json:"temperatures"`
	InvalidTemperatures bool                `json:"invalid_temperatures"`
	// Top is the highest-rated item, first occurrence on ties; nil when empty.
	Top *model.FlatItem `json:"top"`
}

// Overview summarizes responses for a dashboard header.
func Overview(responses []model.ModelResponse) OverviewResult {
	flat := FlattenItems(responses)
	f := FacetsOf(responses)
	o := OverviewResult{
		Responses:           len(responses),
		Items:               len(flat),
		Models:              f.Models,
		Temperatures:        f.Temperatures,
		InvalidTemperatures: f.InvalidTemperatures,
	}
	if s := Summarize(flat); s.Rating != nil {
		top := s.Rating.Highest
		o.Top = &top
	}
	return o
}
