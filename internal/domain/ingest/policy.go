package ingest

import (
	"fmt"
	"strings"
)

// RatingPolicy decides what happens to ratings outside [MinRating, MaxRating].
type RatingPolicy string

// Rating policies.
const (
	// PolicyReject drops out-of-range items.
	PolicyReject RatingPolicy = "reject"
	// PolicyClamp moves out-of-range ratings to the nearest bound.
	PolicyClamp RatingPolicy = "clamp"
	// PolicyPass keeps out-of-range ratings unchanged.
	PolicyPass RatingPolicy = "pass"
)

// Documented rating domain.
const (
	MinRating = 0
	MaxRating = 100
)

// ParseRatingPolicy parses a policy name; the empty string selects PolicyReject.
func ParseRatingPolicy(s string) (RatingPolicy, error) {
	switch p := RatingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyReject, nil
	case PolicyReject, PolicyClamp, PolicyPass:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// apply returns the rating to keep, whether the item survives, and the
// diagnostic action taken (empty when the rating was in range).
func (p RatingPolicy) apply(rating float64) (float64, bool, Action) {
	if rating >= MinRating && rating <= MaxRating {
		return rating, true, ""
	}
	switch p {
	case PolicyClamp:
		if rating < MinRating {
			return MinRating, true, ActionClamped
		}
		return MaxRating, true, ActionClamped
	case PolicyPass:
		return rating, true, ActionPassed
	default:
		return rating, false, ActionRejected
	}
}
