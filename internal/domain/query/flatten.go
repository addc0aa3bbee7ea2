package query

import "github.com/okian/statusboard/internal/domain/model"

// FlattenItems concatenates every response's items, tagging each with its
// parent's model and temperature.
func FlattenItems(responses []model.ModelResponse) []model.FlatItem {
	n := 0
	for _, r := range responses {
		n += len(r.Items)
	}
	out := make([]model.FlatItem, 0, n)
	for _, r := range responses {
		for _, it := range r.Items {
			out = append(out, model.FlatItem{StatusItem: it, Model: r.Model, Temperature: r.Temperature})
		}
	}
	return out
}

// GroupItems is the inverse of FlattenItems: it regroups items by
// (model, temperature) in first-seen order, preserving item order.
// Invalid temperatures group together.
func GroupItems(items []model.FlatItem) []model.ModelResponse {
	type groupKey struct {
		model   string
		temp    model.Temperature
		invalid bool
	}
	keyOf := func(it model.FlatItem) groupKey {
		if !it.Temperature.Valid() {
			return groupKey{model: it.Model, invalid: true}
		}
		return groupKey{model: it.Model, temp: it.Temperature}
	}

	pos := make(map[groupKey]int)
	out := make([]model.ModelResponse, 0)
	for _, it := range items {
		k := keyOf(it)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, model.ModelResponse{Model: it.Model, Temperature: it.Temperature})
		}
		out[i].Items = append(out[i].Items, it.StatusItem)
	}
	return out
}
