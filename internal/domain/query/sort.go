package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names the field items are ordered by.
type SortKey string

// Sort keys.
const (
	SortByRating      SortKey = "rating"
	SortByName        SortKey = "name"
	SortByModel       SortKey = "model"
	SortByTemperature SortKey = "temperature"
)

// Order is the sort direction.
type Order string

// Orders.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Defaults applied when no key or order is given.
const (
	DefaultSortKey = SortByRating
	DefaultOrder   = Desc
)

// ParseSortKey parses a sort key; empty selects DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return DefaultSortKey, nil
	case SortByRating, SortByName, SortByModel, SortByTemperature:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// ParseOrder parses a direction; "ascending" and "descending" are accepted
// and empty selects DefaultOrder.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultOrder, nil
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

// SortItems returns a stably sorted copy of items. Ties keep their input
// order and no secondary key is applied. Names and models compare with a
// locale-aware collator. Items with an invalid temperature sort after all
// valid ones in either direction when ordering by temperature.
func SortItems(items []model.FlatItem, key SortKey, order Order) []model.FlatItem {
	out := slices.Clone(items)
	if out == nil {
		out = []model.FlatItem{}
	}

	sign := 1
	if order == Desc {
		sign = -1
	}

	var compare func(a, b model.FlatItem) int
	switch key {
	case SortByName, SortByModel:
		// A collator keeps scratch buffers and is not safe to share.
		coll := collate.New(language.English)
		field := func(it model.FlatItem) string { return it.Name }
		if key == SortByModel {
			field = func(it model.FlatItem) string { return it.Model }
		}
		compare = func(a, b model.FlatItem) int {
			return sign * coll.CompareString(field(a), field(b))
		}
	case SortByTemperature:
		compare = func(a, b model.FlatItem) int {
			av, bv := a.Temperature.Valid(), b.Temperature.Valid()
			switch {
			case !av && !bv:
				return 0
			case !av:
				return 1
			case !bv:
				return -1
			}
			return sign * cmp.Compare(a.Temperature, b.Temperature)
		}
	default:
		compare = func(a, b model.FlatItem) int {
			return sign * cmp.Compare(a.Rating, b.Rating)
		}
	}

	slices.SortStableFunc(out, compare)
	return out
}
