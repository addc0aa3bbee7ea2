// Package repository holds the session-scoped snapshot of loaded responses.
package repository

import (
	"context"
	"time"

	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/types"
)

// State is the lifecycle state of the served data.
type State string

// Snapshot states.
const (
	// StateLoading means no load has finished yet.
	StateLoading State = "loading"
	// StateNoData means a load finished but produced no records.
	StateNoData State = "no_data"
	// StateReady means at least one record is available.
	StateReady State = "ready"
)

// Reason explains a StateNoData snapshot.
type Reason string

// No-data reasons.
const (
	ReasonNone                Reason = ""
	ReasonDirectoryMissing    Reason = "directory_missing"
	ReasonDirectoryUnreadable Reason = "directory_unreadable"
	ReasonNoRecords           Reason = "no_records"
)

// Snapshot is an immutable view of one completed load. Callers must not
// modify the slices it holds.
type Snapshot struct {
	ID           string
	LoadedAt     time.Time
	State        State
	Reason       Reason
	Responses    []model.ModelResponse
	Diagnostics  []ingest.Diagnostic
	FilesSeen    int
	FilesSkipped int
	Duration     time.Duration
}

// ItemCount returns the number of status items across all responses.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, r := range s.Responses {
		n += len(r.Items)
	}
	return n
}

// Ready reports whether the snapshot holds data.
func (s *Snapshot) Ready() bool { return s.State == StateReady }

// Meta describes the snapshot for response envelopes.
func (s *Snapshot) Meta() types.Meta {
	return types.NewMeta(s.ID, string(s.State), string(s.Reason), s.LoadedAt)
}

// Loader reads a data directory into a load result.
type Loader interface {
	Load(ctx context.Context, dir string) ingest.Result
}

// Store provides the current snapshot and replaces it on demand.
type Store interface {
	// Current returns the latest snapshot; before the first load completes
	// it returns a snapshot in StateLoading.
	Current() *Snapshot
	// Reload reads the data directory and swaps in a new snapshot wholesale.
	Reload(ctx context.Context) (*Snapshot, error)
}
