package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/okian/statusboard/pkg/metrics"
)

// SnapshotStore keeps the most recent load of a data directory.
// Reads are lock-free; reloads are serialized.
type SnapshotStore struct {
	dir    string
	loader Loader
	logger logger.Logger
	now    func() time.Time
	newID  func() string

	// reloadMu serializes Reload so two loads never race to publish.
	reloadMu sync.Mutex
	snapshot atomic.Pointer[Snapshot]
	reloads  atomic.Int64
}

var loadingSnapshot = &Snapshot{State: StateLoading}

// NewSnapshotStore constructs a store for dir. No load happens until Reload.
func NewSnapshotStore(dir string, opts ...Option) (*SnapshotStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrNoDataDir
	}
	s := &SnapshotStore{
		dir:    dir,
		logger: logger.Get().Named("snapshot"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loader == nil {
		s.loader = ingest.NewLoader(ingest.WithLogger(s.logger))
	}
	return s, nil
}

// Dir returns the data directory this store reads.
func (s *SnapshotStore) Dir() string { return s.dir }

// Reloads returns how many snapshots have been published.
func (s *SnapshotStore) Reloads() int64 { return s.reloads.Load() }

// Current implements Store.Current.
func (s *SnapshotStore) Current() *Snapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return loadingSnapshot
}

// Reload implements Store.Reload. The previous snapshot stays in place if
// ctx is canceled before the new one is published.
func (s *SnapshotStore) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		metrics.RecordSnapshotReload("error")
		return s.Current(), fmt.Errorf("%w: %w", ErrReloadCanceled, err)
	}

	start := time.Now()
	res := s.loader.Load(ctx, s.dir)
	if err := ctx.Err(); err != nil {
		metrics.RecordSnapshotReload("error")
		s.logger.Warn(ctx, "reload canceled; keeping previous snapshot", logger.Error(err))
		return s.Current(), fmt.Errorf("%w: %w", ErrReloadCanceled, err)
	}

	snap := s.build(res)
	s.snapshot.Store(snap)
	s.reloads.Add(1)

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordSnapshotReload(string(snap.State))
	metrics.RecordSnapshotSwap(snap.LoadedAt, ms)
	metrics.UpdateSnapshotSize(len(snap.Responses), snap.ItemCount())

	s.logger.Info(ctx, "snapshot published",
		logger.String("id", snap.ID),
		logger.String("state", string(snap.State)),
		logger.String("reason", string(snap.Reason)),
		logger.Int("responses", len(snap.Responses)),
		logger.Int("diagnostics", len(snap.Diagnostics)),
	)
	return snap, nil
}

func (s *SnapshotStore) build(res ingest.Result) *Snapshot {
	snap := &Snapshot{
		ID:           s.newID(),
		LoadedAt:     s.now(),
		State:        StateReady,
		Responses:    res.Responses,
		Diagnostics:  res.Diagnostics,
		FilesSeen:    res.FilesSeen,
		FilesSkipped: res.FilesSkipped,
		Duration:     res.Duration,
	}
	switch {
	case res.DirState == ingest.DirMissing:
		snap.State, snap.Reason = StateNoData, ReasonDirectoryMissing
	case res.DirState == ingest.DirUnreadable:
		snap.State, snap.Reason = StateNoData, ReasonDirectoryUnreadable
	case len(res.Responses) == 0:
		snap.State, snap.Reason = StateNoData, ReasonNoRecords
	}
	return snap
}
