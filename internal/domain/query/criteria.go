package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
)

// Set is a membership filter that is either "everything" or an explicit list.
// The zero Set selects nothing.
type Set[T comparable] struct {
	all    bool
	values []T
	index  map[T]struct{}
}

// All returns a Set that matches every value.
func All[T comparable]() Set[T] { return Set[T]{all: true} }

// Only returns a Set that matches exactly the given values.
// Only() with no arguments matches nothing.
func Only[T comparable](values ...T) Set[T] {
	s := Set[T]{index: make(map[T]struct{}, len(values))}
	for _, v := range values {
		if _, dup := s.index[v]; dup {
			continue
		}
		s.index[v] = struct{}{}
		s.values = append(s.values, v)
	}
	return s
}

// IsAll reports whether s matches every value.
func (s Set[T]) IsAll() bool { return s.all }

// Contains reports whether v is selected.
func (s Set[T]) Contains(v T) bool {
	if s.all {
		return true
	}
	_, ok := s.index[v]
	return ok
}

// Values returns the explicit members in insertion order; nil for All.
func (s Set[T]) Values() []T {
	if s.all {
		return nil
	}
	return append([]T(nil), s.values...)
}

// RatingRange is an inclusive [Min, Max] bound on item ratings.
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AnyRating matches every rating.
func AnyRating() RatingRange { return RatingRange{Min: math.Inf(-1), Max: math.Inf(1)} }

// Between returns the inclusive range [lo, hi].
func Between(lo, hi float64) RatingRange { return RatingRange{Min: lo, Max: hi} }

// Contains reports whether lo <= r <= hi.
func (r RatingRange) Contains(rating float64) bool {
	return rating >= r.Min && rating <= r.Max
}

// KindFilter narrows items by kind.
type KindFilter string

// Kind filters.
const (
	KindAll      KindFilter = "all"
	KindActivity KindFilter = KindFilter(model.KindActivity)
	KindObject   KindFilter = KindFilter(model.KindObject)
)

// ParseKindFilter accepts "all", "activity" or "object"; empty means all.
func ParseKindFilter(s string) (KindFilter, error) {
	switch f := KindFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return KindAll, nil
	case KindAll, KindActivity, KindObject:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Matches reports whether an item of kind k passes the filter.
func (f KindFilter) Matches(k model.Kind) bool {
	return f == KindAll || f == "" || KindFilter(k) == f
}

// Criteria selects responses and narrows their items.
type Criteria struct {
	Models       Set[string]
	Temperatures Set[model.Temperature]
	Rating       RatingRange
	Kind         KindFilter
}

// NewCriteria returns criteria that keep everything.
func NewCriteria() Criteria {
	return Criteria{
		Models:       All[string](),
		Temperatures: All[model.Temperature](),
		Rating:       AnyRating(),
		Kind:         KindAll,
	}
}

// Validate rejects inverted or NaN rating bounds and unknown kinds.
func (c Criteria) Validate() error {
	if math.IsNaN(c.Rating.Min) || math.IsNaN(c.Rating.Max) {
		return fmt.Errorf("%w: rating bound is not a number", ErrInvalidCriteria)
	}
	if c.Rating.Min > c.Rating.Max {
		return fmt.Errorf("%w: min rating %g is greater than max rating %g", ErrInvalidCriteria, c.Rating.Min, c.Rating.Max)
	}
	if _, err := ParseKindFilter(string(c.Kind)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, err)
	}
	return nil
}

// matchesResponse applies the response-level predicates.
func (c Criteria) matchesResponse(r model.ModelResponse) bool {
	if !c.Models.Contains(r.Model) {
		return false
	}
	if c.Temperatures.IsAll() {
		return true
	}
	// NaN never equals a map key, so invalid temperatures only pass All.
	return r.Temperature.Valid() && c.Temperatures.Contains(r.Temperature)
}

func (c Criteria) matchesItem(it model.StatusItem) bool {
	return c.Rating.Contains(it.Rating) && c.Kind.Matches(it.Kind)
}
