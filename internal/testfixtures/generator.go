// Package testfixtures generates reproducible status data for tests: in-memory
// responses, data directories and fs.FS trees in the on-disk file format.
package testfixtures

import (
	"math/rand/v2"

	"github.com/okian/statusboard/internal/domain/model"
)

// profile is a rating range an item is drawn from.
type profile struct {
	min, max int
}

// Rating profiles, one per band plus a full-range one.
var profiles = []profile{
	{90, 100}, // exceptional
	{80, 89},  // high
	{70, 79},  // elevated
	{60, 69},  // moderate
	{0, 59},   // baseline
	{0, 100},  // anywhere
}

var (
	defaultModels       = []string{"gpt-4o", "claude-opus-4", "grok-4", "kimi-k2"}
	defaultTemperatures = []model.Temperature{0.2, 0.7, 1.0, 1.2}

	activities = []string{"Polo", "Space flight", "Michelin dinner", "Heli-skiing", "Private concert", "Safari"}
	objects    = []string{"Private jet", "Superyacht", "Island", "Art collection", "Rolex", "Vineyard"}
)

// Generator builds random but seed-reproducible responses.
type Generator struct {
	rng          *rand.Rand
	models       []string
	temperatures []model.Temperature
	maxItems     int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the random sequence.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithModels sets the model ids responses are drawn from.
func WithModels(models ...string) Option {
	return func(g *Generator) {
		if len(models) > 0 {
			g.models = models
		}
	}
}

// WithTemperatures sets the temperatures responses are drawn from.
func WithTemperatures(temps ...model.Temperature) Option {
	return func(g *Generator) {
		if len(temps) > 0 {
			g.temperatures = temps
		}
	}
}

// WithMaxItems bounds the items per response; each response gets 0..n items.
func WithMaxItems(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.maxItems = n
		}
	}
}

// NewGenerator returns a generator seeded with 1 unless WithSeed is given.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		models:       defaultModels,
		temperatures: defaultTemperatures,
		maxItems:     5,
	}
	WithSeed(1)(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Response returns one response for the given key.
func (g *Generator) Response(id string, temp model.Temperature) model.ModelResponse {
	r := model.ModelResponse{Model: id, Temperature: temp, Items: []model.StatusItem{}}
	for range g.rng.IntN(g.maxItems + 1) {
		r.Items = append(r.Items, g.item())
	}
	return r
}

// Grid returns one response per (model, temperature) pair, models outermost.
func (g *Generator) Grid() []model.ModelResponse {
	out := make([]model.ModelResponse, 0, len(g.models)*len(g.temperatures))
	for _, id := range g.models {
		for _, t := range g.temperatures {
			out = append(out, g.Response(id, t))
		}
	}
	return out
}

// Sample returns n responses with randomly drawn keys; keys may repeat.
func (g *Generator) Sample(n int) []model.ModelResponse {
	out := make([]model.ModelResponse, 0, n)
	for range n {
		id := g.models[g.rng.IntN(len(g.models))]
		t := g.temperatures[g.rng.IntN(len(g.temperatures))]
		out = append(out, g.Response(id, t))
	}
	return out
}

func (g *Generator) item() model.StatusItem {
	kind, names := model.KindActivity, activities
	if g.rng.IntN(2) == 0 {
		kind, names = model.KindObject, objects
	}
	p := profiles[g.rng.IntN(len(profiles))]
	return model.StatusItem{
		Name:   names[g.rng.IntN(len(names))],
		Kind:   kind,
		Rating: float64(p.min + g.rng.IntN(p.max-p.min+1)),
	}
}
