package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
)

// ParseTemperatures parses user-supplied temperature values. Only finite
// numbers can be selected explicitly.
func ParseTemperatures(values []string) ([]model.Temperature, error) {
	out := make([]model.Temperature, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: temperature %q is not a finite number", ErrInvalidCriteria, v)
		}
		out = append(out, model.Temperature(f))
	}
	return out, nil
}

// ParseRating parses an optional rating bound; empty yields fallback.
func ParseRating(s string, fallback float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: rating bound %q is not a number", ErrInvalidCriteria, s)
	}
	return f, nil
}
