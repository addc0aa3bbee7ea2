// Package query holds the pure read-side operations over a loaded collection:
// facets, filtering, flattening, sorting and statistics. Nothing here touches
// disk or mutates its inputs.
package query

import "github.com/okian/statusboard/internal/domain/model"

// Filter keeps responses that pass the model and temperature predicates, then
// narrows each one's items by rating range and kind. A response left with no
// items is dropped. The input is never modified.
func Filter(responses []model.ModelResponse, c Criteria) []model.ModelResponse {
	out := make([]model.ModelResponse, 0, len(responses))
	for _, r := range responses {
		if !c.matchesResponse(r) {
			continue
		}
		items := make([]model.StatusItem, 0, len(r.Items))
		for _, it := range r.Items {
			if c.matchesItem(it) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		r.Items = items
		out = append(out, r)
	}
	return out
}
