package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
)

// Validate converts the raw contents of one data file into strict status items.
//
// The root must be a JSON object. A missing or null "items" field becomes an
// empty sequence; an "items" field of any other non-array type fails the file.
// Items with a blank name, an unknown type or a non-numeric rating are
// dropped, and ratings outside the documented range are handled by policy.
// Every defaulted or rejected value produces a diagnostic. Unknown fields are
// ignored.
func Validate(source string, data []byte, policy RatingPolicy) ([]model.StatusItem, []Diagnostic, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrMalformedFile, source, err)
	}
	if root == nil {
		return nil, nil, fmt.Errorf("%w: %s: root is not an object", ErrMalformedFile, source)
	}

	rawItems, ok := root["items"]
	if !ok || isNull(rawItems) {
		return []model.StatusItem{}, []Diagnostic{{
			File:    source,
			Field:   "items",
			Action:  ActionDefaulted,
			Message: "items field is missing; using an empty list",
		}}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(rawItems, &elems); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: items is not an array", ErrMalformedFile, source)
	}

	items := make([]model.StatusItem, 0, len(elems))
	var diags []Diagnostic
	for i, elem := range elems {
		item, diag, ok := validateItem(source, i, elem, policy)
		if diag != nil {
			diags = append(diags, *diag)
		}
		if ok {
			items = append(items, item)
		}
	}
	return items, diags, nil
}

func validateItem(source string, index int, raw json.RawMessage, policy RatingPolicy) (model.StatusItem, *Diagnostic, bool) {
	reject := func(field, msg string) (model.StatusItem, *Diagnostic, bool) {
		return model.StatusItem{}, &Diagnostic{
			File:    source,
			Field:   itemField(index, field),
			Action:  ActionRejected,
			Message: msg,
		}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return reject("", "item is not an object")
	}

	var name string
	if err := json.Unmarshal(fields["name"], &name); err != nil || strings.TrimSpace(name) == "" {
		return reject("name", "name must be a non-empty string")
	}

	var tag string
	if err := json.Unmarshal(fields["type"], &tag); err != nil {
		return reject("type", "type must be a string")
	}
	kind, err := model.ParseKind(tag)
	if err != nil {
		return reject("type", fmt.Sprintf("type %q is not activity or object", tag))
	}

	rawRating, ok := fields["rating"]
	if !ok || isNull(rawRating) {
		return reject("rating", "rating is missing")
	}
	var rating float64
	if err := json.Unmarshal(rawRating, &rating); err != nil {
		return reject("rating", "rating must be a number")
	}

	kept, survives, action := policy.apply(rating)
	item := model.StatusItem{Name: name, Kind: kind, Rating: kept}
	if action == "" {
		return item, nil, true
	}
	return item, &Diagnostic{
		File:    source,
		Field:   itemField(index, "rating"),
		Action:  action,
		Message: fmt.Sprintf("rating %g is outside [%d, %d]", rating, MinRating, MaxRating),
	}, survives
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
