package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrReloadCanceled = errors.New("snapshot reload canceled")
	ErrNoDataDir      = errors.New("no data directory configured")
)
