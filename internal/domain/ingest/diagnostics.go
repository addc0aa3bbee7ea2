package ingest

import "fmt"

// Action describes what the loader did about a problem it found.
type Action string

// Diagnostic actions.
const (
	// ActionDefaulted means a missing value was replaced with a default.
	ActionDefaulted Action = "defaulted"
	// ActionRejected means a single item was dropped from its response.
	ActionRejected Action = "rejected"
	// ActionClamped means a rating was moved into the documented range.
	ActionClamped Action = "clamped"
	// ActionPassed means an out-of-range rating was kept as-is.
	ActionPassed Action = "passed_through"
	// ActionSkipped means the whole file contributed no record.
	ActionSkipped Action = "skipped"
)

// Diagnostic records one defaulted, rejected or skipped value found during a load.
type Diagnostic struct {
	File    string `json:"file"`
	Field   string `json:"field,omitempty"`
	Action  Action `json:"action"`
	Message string `json:"message"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: %s: %s", d.File, d.Action, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.File, d.Action, d.Field, d.Message)
}

func itemField(index int, name string) string {
	if name == "" {
		return fmt.Sprintf("items[%d]", index)
	}
	return fmt.Sprintf("items[%d].%s", index, name)
}
