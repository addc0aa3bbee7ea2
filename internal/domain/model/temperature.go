package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Temperature is the sampling temperature a response was generated at.
// NaN is the sentinel for a temperature that could not be parsed from a file name.
type Temperature float64

// InvalidTemperature returns the sentinel used for unparseable temperatures.
func InvalidTemperature() Temperature { return Temperature(math.NaN()) }

// Valid reports whether t is a finite number.
func (t Temperature) Valid() bool {
	f := float64(t)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float64 returns t as a plain float64.
func (t Temperature) Float64() float64 { return float64(t) }

// Equal compares two temperatures, treating all invalid values as equal to
// each other and unequal to every valid value.
func (t Temperature) Equal(o Temperature) bool {
	if !t.Valid() || !o.Valid() {
		return !t.Valid() && !o.Valid()
	}
	return t == o
}

// String renders the shortest decimal form ("0.7", "1") or "n/a".
func (t Temperature) String() string {
	if !t.Valid() {
		return "n/a"
	}
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}

// MarshalJSON encodes invalid temperatures as null.
func (t Temperature) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return []byte(t.String()), nil
}

// UnmarshalJSON decodes null into the invalid sentinel.
func (t *Temperature) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = InvalidTemperature()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*t = Temperature(f)
	return nil
}
