package query_test

import (
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/testfixtures"
)

func item(name string, kind model.Kind, rating float64) model.StatusItem {
	return model.StatusItem{Name: name, Kind: kind, Rating: rating}
}

func sampleResponses() []model.ModelResponse {
	return []model.ModelResponse{
		{Model: "gpt-4o", Temperature: 0.7, Items: []model.StatusItem{
			item("Private jet", model.KindObject, 97),
			item("Michelin dinner", model.KindActivity, 82),
		}},
		{Model: "claude-opus-4", Temperature: 0.2, Items: []model.StatusItem{
			item("Superyacht", model.KindObject, 99),
			item("Polo", model.KindActivity, 75),
			item("Art collection", model.KindObject, 91),
		}},
		{Model: "gpt-4o", Temperature: 1.0, Items: []model.StatusItem{
			item("Space flight", model.KindActivity, 99),
			item("Rolex", model.KindObject, 60),
		}},
		{Model: "mystery", Temperature: model.InvalidTemperature(), Items: []model.StatusItem{
			item("Island", model.KindObject, 95),
		}},
	}
}

// randomResponses builds a reproducible collection for property checks.
func randomResponses(seed uint64, n int) []model.ModelResponse {
	return testfixtures.NewGenerator(testfixtures.WithSeed(seed)).Sample(n)
}
