package query

import "errors"

// Sentinel kinds for query errors.
var (
	ErrNoData          = errors.New("no data")
	ErrInvalidCriteria = errors.New("invalid criteria")
	ErrInvalidSortKey  = errors.New("invalid sort key")
	ErrInvalidOrder    = errors.New("invalid sort order")
	ErrInvalidKind     = errors.New("invalid kind filter")
)
