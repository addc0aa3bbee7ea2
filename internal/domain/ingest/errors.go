package ingest

import "errors"

// Sentinel kinds for ingestion errors. Callers use errors.Is.
var (
	ErrNotJSON         = errors.New("not a .json file")
	ErrMalformedName   = errors.New("malformed file name")
	ErrMalformedFile   = errors.New("malformed file")
	ErrReadFile        = errors.New("read file failed")
	ErrInvalidPolicy   = errors.New("invalid rating policy")
	ErrLoadInterrupted = errors.New("load interrupted")
)
