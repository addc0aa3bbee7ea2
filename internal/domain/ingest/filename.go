package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/statusboard/internal/domain/model"
)

const (
	fileSuffix = ".json"
	separator  = "_"
)

// FileKey is the (model, temperature) pair encoded in a data file name.
type FileKey struct {
	Model       string
	Temperature model.Temperature
}

// ParseFilename splits "<model>_<temperature>.json" on the first separator.
//
// The suffix match is exact and case-sensitive. A name without a separator,
// or whose temperature segment is not a finite number, still yields a key:
// the temperature is set to model.InvalidTemperature() and a diagnostic says so.
// An empty model segment is an error.
func ParseFilename(name string) (FileKey, []Diagnostic, error) {
	if !strings.HasSuffix(name, fileSuffix) {
		return FileKey{}, nil, fmt.Errorf("%w: %q", ErrNotJSON, name)
	}
	stem := strings.TrimSuffix(name, fileSuffix)
	id, rest, found := strings.Cut(stem, separator)
	if strings.TrimSpace(id) == "" {
		return FileKey{}, nil, fmt.Errorf("%w: %q has an empty model segment", ErrMalformedName, name)
	}

	key := FileKey{Model: id, Temperature: model.InvalidTemperature()}
	if !found {
		return key, []Diagnostic{{
			File:    name,
			Field:   "temperature",
			Action:  ActionDefaulted,
			Message: "file name has no '_' separator; temperature is unknown",
		}}, nil
	}

	f, err := strconv.ParseFloat(rest, 64)
	if err != nil || !model.Temperature(f).Valid() {
		return key, []Diagnostic{{
			File:    name,
			Field:   "temperature",
			Action:  ActionDefaulted,
			Message: fmt.Sprintf("temperature segment %q is not a finite number", rest),
		}}, nil
	}
	key.Temperature = model.Temperature(f)
	return key, nil, nil
}
