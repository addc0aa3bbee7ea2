package query

import (
	"fmt"

	"github.com/okian/statusboard/internal/domain/model"
)

// RatingSummary holds the rating aggregates of a non-empty item sequence.
type RatingSummary struct {
	Mean    float64        `json:"mean"`
	Highest model.FlatItem `json:"highest"`
	Lowest  model.FlatItem `json:"lowest"`
}

// Summary aggregates a flattened item sequence.
// Rating is nil when there are no items; there is no placeholder value.
type Summary struct {
	Count  int                      `json:"count"`
	ByKind map[model.Kind]int       `json:"by_kind"`
	ByBand map[model.RatingBand]int `json:"by_band"`
	Rating *RatingSummary           `json:"rating"`
}

// HasData reports whether the summary covers at least one item.
func (s Summary) HasData() bool { return s.Rating != nil }

// RatingSummary returns the rating aggregates or ErrNoData.
func (s Summary) RatingSummary() (RatingSummary, error) {
	if s.Rating == nil {
		return RatingSummary{}, fmt.Errorf("%w: no items to summarize", ErrNoData)
	}
	return *s.Rating, nil
}

// Summarize counts items by kind and band and computes mean, highest and
// lowest rating. Ties for highest and lowest go to the first occurrence.
func Summarize(items []model.FlatItem) Summary {
	s := Summary{
		Count:  len(items),
		ByKind: make(map[model.Kind]int, len(model.Kinds())),
		ByBand: make(map[model.RatingBand]int, len(model.Bands())),
	}
	for _, k := range model.Kinds() {
		s.ByKind[k] = 0
	}
	for _, b := range model.Bands() {
		s.ByBand[b] = 0
	}
	if len(items) == 0 {
		return s
	}

	rs := RatingSummary{Highest: items[0], Lowest: items[0]}
	sum := 0.0
	for _, it := range items {
		s.ByKind[it.Kind]++
		s.ByBand[model.Band(it.Rating)]++
		sum += it.Rating
		if it.Rating > rs.Highest.Rating {
			rs.Highest = it
		}
		if it.Rating < rs.Lowest.Rating {
			rs.Lowest = it
		}
	}
	rs.Mean = sum / float64(len(items))
	s.Rating = &rs
	return s
}
