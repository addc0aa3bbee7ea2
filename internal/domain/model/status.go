// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKind is returned when a kind tag is neither activity nor object.
var ErrInvalidKind = errors.New("invalid item kind")

// Kind is the two-valued category of a status item.
type Kind string

// Known kinds.
const (
	KindActivity Kind = "activity"
	KindObject   Kind = "object"
)

// Kinds lists every valid kind in display order.
func Kinds() []Kind { return []Kind{KindActivity, KindObject} }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindActivity || k == KindObject
}

// ParseKind converts a raw tag into a Kind. Matching is exact; source files
// are produced by a generator that always emits lowercase tags.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// StatusItem is one rated status symbol.
type StatusItem struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"type"`
	Rating float64 `json:"rating"`
}

// ModelResponse is the full set of items one model produced at one temperature.
// Items keep the order of the source file.
type ModelResponse struct {
	Model       string       `json:"model"`
	Temperature Temperature  `json:"temperature"`
	Items       []StatusItem `json:"items"`
	// Source is the originating file name; kept for diagnostics only.
	Source string `json:"-"`
}

// FlatItem is a status item tagged with its parent response's model and temperature.
type FlatItem struct {
	StatusItem
	Model       string      `json:"model"`
	Temperature Temperature `json:"temperature"`
}

// Key identifies the (model, temperature) pair of a response.
type Key struct {
	Model       string
	Temperature Temperature
}

// Key returns the (model, temperature) pair of r.
func (r ModelResponse) Key() Key {
	return Key{Model: r.Model, Temperature: r.Temperature}
}

// Key returns the (model, temperature) pair f came from.
func (f FlatItem) Key() Key {
	return Key{Model: f.Model, Temperature: f.Temperature}
}

// Label renders the pair for display, e.g. "gpt-4o @ 0.7".
func (k Key) Label() string {
	return strings.TrimSpace(k.Model) + " @ " + k.Temperature.String()
}
