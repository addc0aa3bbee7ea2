package model

// defaultDisplayNames maps generator model identifiers to readable labels.
var defaultDisplayNames = map[string]string{
	"claude-sonnet-4": "Claude Sonnet 4",
	"claude-opus-4":   "Claude Opus 4",
	"gemini-2.5-pro":  "Gemini 2.5 Pro",
	"grok-4":          "Grok-4",
	"kimi-k2":         "Kimi K2",
	"kimi-v2":         "Kimi K2",
	"deepseek-r1":     "DeepSeek R1",
	"gpt-4.1":         "GPT-4.1",
	"gpt-4o":          "GPT-4o",
	"gpt-o3":          "GPT-o3",
}

// DisplayName returns a human friendly label for a model identifier.
// Entries in overrides win over the built-in table; unknown identifiers are
// returned unchanged.
func DisplayName(id string, overrides map[string]string) string {
	if name, ok := overrides[id]; ok && name != "" {
		return name
	}
	if name, ok := defaultDisplayNames[id]; ok {
		return name
	}
	return id
}

// RatingBand is the tier a rating falls into.
type RatingBand string

// Rating bands, highest first.
const (
	BandExceptional RatingBand = "exceptional"
	BandHigh        RatingBand = "high"
	BandElevated    RatingBand = "elevated"
	BandModerate    RatingBand = "moderate"
	BandBaseline    RatingBand = "baseline"
)

// Band thresholds (inclusive lower bounds).
const (
	exceptionalFloor = 90
	highFloor        = 80
	elevatedFloor    = 70
	moderateFloor    = 60
)

// Bands lists every band from highest to lowest.
func Bands() []RatingBand {
	return []RatingBand{BandExceptional, BandHigh, BandElevated, BandModerate, BandBaseline}
}

// Band classifies a rating.
func Band(rating float64) RatingBand {
	switch {
	case rating >= exceptionalFloor:
		return BandExceptional
	case rating >= highFloor:
		return BandHigh
	case rating >= elevatedFloor:
		return BandElevated
	case rating >= moderateFloor:
		return BandModerate
	default:
		return BandBaseline
	}
}
