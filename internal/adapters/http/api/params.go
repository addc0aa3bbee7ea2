package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/query"
)

// Query parameter names.
const (
	paramModels       = "models"
	paramTemperatures = "temperatures"
	paramMinRating    = "min_rating"
	paramMaxRating    = "max_rating"
	paramKind         = "kind"
	paramSort         = "sort"
	paramOrder        = "order"
	paramLimit        = "limit"
)

// criteriaFromQuery builds filter criteria. An absent list parameter selects
// everything; a present but empty one selects nothing.
func criteriaFromQuery(q url.Values) (query.Criteria, error) {
	c := query.NewCriteria()

	if q.Has(paramModels) {
		c.Models = query.Only(splitList(q.Get(paramModels))...)
	}
	if q.Has(paramTemperatures) {
		temps, err := query.ParseTemperatures(splitList(q.Get(paramTemperatures)))
		if err != nil {
			return c, err
		}
		c.Temperatures = query.Only[model.Temperature](temps...)
	}

	lo, err := query.ParseRating(q.Get(paramMinRating), math.Inf(-1))
	if err != nil {
		return c, err
	}
	hi, err := query.ParseRating(q.Get(paramMaxRating), math.Inf(1))
	if err != nil {
		return c, err
	}
	c.Rating = query.Between(lo, hi)

	if c.Kind, err = query.ParseKindFilter(q.Get(paramKind)); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func sortFromQuery(q url.Values) (query.SortKey, query.Order, error) {
	key, err := query.ParseSortKey(q.Get(paramSort))
	if err != nil {
		return "", "", err
	}
	order, err := query.ParseOrder(q.Get(paramOrder))
	if err != nil {
		return "", "", err
	}
	return key, order, nil
}

// limitFromQuery returns 0 when no limit was requested.
func limitFromQuery(q url.Values) (int, error) {
	s := strings.TrimSpace(q.Get(paramLimit))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit %q must be a positive integer", s)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
