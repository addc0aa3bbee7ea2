package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/statusboard/internal/adapters/repository"
	"github.com/okian/statusboard/internal/domain/model"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printState writes one line describing the snapshot and reports whether
// it holds data.
func printState(w io.Writer, dir string, snap *repository.Snapshot) bool {
	if snap.Ready() {
		fmt.Fprintf(w, "Data: %s (%d files, snapshot %s)\n", dir, snap.FilesSeen, snap.ID)
		return true
	}
	reason := string(snap.Reason)
	if reason == "" {
		reason = string(snap.State)
	}
	fmt.Fprintf(w, "No data in %s: %s\n", dir, strings.ReplaceAll(reason, "_", " "))
	return false
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatItem(it model.FlatItem) string {
	return fmt.Sprintf("%s (%s, %s)", it.Name, formatRating(it.Rating), it.Key().Label())
}

func joinTemperatures(temps []model.Temperature, invalid bool) string {
	parts := make([]string, 0, len(temps)+1)
	for _, t := range temps {
		parts = append(parts, t.String())
	}
	if invalid {
		parts = append(parts, model.InvalidTemperature().String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
