// Package types contains the wire shapes shared by the HTTP API and the CLI.
package types

import (
	"time"

	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/query"
)

// Meta describes the snapshot an answer was computed from.
type Meta struct {
	SnapshotID string     `json:"snapshot_id,omitempty"`
	State      string     `json:"state"`
	Reason     string     `json:"reason,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
}

// DataResponse is the full collection with its state.
type DataResponse struct {
	Meta
	Responses []model.ModelResponse `json:"responses"`
}

// ItemsResponse is a sorted, flattened item list.
type ItemsResponse struct {
	Meta
	Sort  query.SortKey    `json:"sort"`
	Order query.Order      `json:"order"`
	Total int              `json:"total"`
	Items []model.FlatItem `json:"items"`
}

// StatsResponse carries a summary; NoData is set when no item matched.
type StatsResponse struct {
	Meta
	NoData bool `json:"no_data"`
	query.Summary
}

// OverviewResponse is the dashboard header view.
type OverviewResponse struct {
	Meta
	query.OverviewResult
	DisplayNames map[string]string `json:"display_names"`
}

// FacetsResponse lists available filter values.
type FacetsResponse struct {
	Meta
	query.Facets
	DisplayNames map[string]string `json:"display_names"`
}

// DiagnosticsResponse lists what the last load defaulted, rejected or skipped.
type DiagnosticsResponse struct {
	Meta
	FilesSeen    int                 `json:"files_seen"`
	FilesSkipped int                 `json:"files_skipped"`
	Diagnostics  []ingest.Diagnostic `json:"diagnostics"`
}

// HealthResponse is the liveness answer.
type HealthResponse struct {
	Status string `json:"status"`
	Meta
}

// NewMeta builds Meta; a zero loadedAt is omitted.
func NewMeta(snapshotID, state, reason string, loadedAt time.Time) Meta {
	m := Meta{SnapshotID: snapshotID, State: state, Reason: reason}
	if !loadedAt.IsZero() {
		t := loadedAt.UTC()
		m.LoadedAt = &t
	}
	return m
}
