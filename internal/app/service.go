// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"sync"
	"time"

	"github.com/okian/statusboard/internal/adapters/fswatch"
	"github.com/okian/statusboard/internal/adapters/repository"
	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/query"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/okian/statusboard/pkg/metrics"
)

// Default service configuration.
const (
	defaultDataDir               = "data"
	defaultWatchDebounce         = 500 * time.Millisecond
	defaultSystemMetricsInterval = 10 * time.Second
)

// Service owns the session snapshot and answers queries against it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   *repository.SnapshotStore
	watcher *fswatch.Watcher

	// Configuration
	dataDir               string
	loadConcurrency       int
	policy                ingest.RatingPolicy
	watchEnabled          bool
	watchDebounce         time.Duration
	modelNames            map[string]string
	systemMetricsInterval time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service. No data is read until Start or Reload.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		dataDir:               defaultDataDir,
		loadConcurrency:       runtime.NumCPU(),
		policy:                ingest.PolicyReject,
		watchEnabled:          true,
		watchDebounce:         defaultWatchDebounce,
		modelNames:            map[string]string{},
		systemMetricsInterval: defaultSystemMetricsInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	loader := ingest.NewLoader(
		ingest.WithLogger(s.logger.Named("ingest")),
		ingest.WithConcurrency(s.loadConcurrency),
		ingest.WithRatingPolicy(s.policy),
	)
	store, err := repository.NewSnapshotStore(s.dataDir,
		repository.WithLoader(loader),
		repository.WithLogger(s.logger.Named("snapshot")),
	)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	s.store = store
	return s, nil
}

// Start performs the initial load and, if enabled, starts watching the data
// directory. A missing directory is not an error; the snapshot reports no_data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting statusboard service...",
		logger.String("data_dir", s.dataDir),
		logger.String("rating_policy", string(s.policy)),
	)

	if _, err := s.store.Reload(ctx); err != nil {
		return fmt.Errorf("service: initial load: %w", err)
	}

	if s.watchEnabled {
		w, err := fswatch.New(s.dataDir, s.onChange,
			fswatch.WithDebounce(s.watchDebounce),
			fswatch.WithLogger(s.logger.Named("fswatch")),
		)
		if err != nil {
			return fmt.Errorf("service: %w", err)
		}
		// Watching uses its own lifetime; Stop ends it.
		if err := w.Start(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn(ctx, "file watching disabled", logger.Error(err))
		} else {
			s.watcher = w
		}
	}

	s.stopCh = make(chan struct{})
	if s.systemMetricsInterval > 0 {
		s.wg.Add(1)
		go s.collectSystemMetrics(s.stopCh)
	}

	s.started = true
	snap := s.store.Current()
	s.logger.Info(ctx, "statusboard service started",
		logger.String("state", string(snap.State)),
		logger.Int("responses", len(snap.Responses)),
		logger.Bool("watching", s.watcher != nil),
	)
	return nil
}

// Stop gracefully shuts down the watcher and background collectors.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping statusboard service...")

	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	close(s.stopCh)
	s.wg.Wait()

	s.started = false
	s.logger.Info(context.Background(), "statusboard service stopped")
}

func (s *Service) onChange(ctx context.Context) error {
	_, err := s.Reload(ctx)
	return err
}

func (s *Service) collectSystemMetrics(stopCh <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.systemMetricsInterval)
	defer ticker.Stop()

	metrics.CollectSystem()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			metrics.CollectSystem()
		}
	}
}

// Reload replaces the snapshot with a fresh load of the data directory.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	snap, err := s.store.Reload(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "reload")
		return snap, fmt.Errorf("service: reload: %w", err)
	}
	return snap, nil
}

// Snapshot returns the current snapshot. Before the first load it is in
// repository.StateLoading.
func (s *Service) Snapshot() *repository.Snapshot {
	return s.store.Current()
}

// DataDir returns the configured data directory.
func (s *Service) DataDir() string { return s.dataDir }

// DisplayNames maps each model id to its human-friendly name.
func (s *Service) DisplayNames(models []string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(models))
	for _, id := range models {
		out[id] = model.DisplayName(id, s.modelNames)
	}
	return out
}

// Filter applies criteria to the snapshot's responses.
func (s *Service) Filter(snap *repository.Snapshot, c query.Criteria) ([]model.ModelResponse, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	defer observe("filter", time.Now())
	return query.Filter(snap.Responses, c), nil
}

// Items returns the filtered responses flattened and sorted.
func (s *Service) Items(snap *repository.Snapshot, c query.Criteria, key query.SortKey, order query.Order) ([]model.FlatItem, error) {
	filtered, err := s.Filter(snap, c)
	if err != nil {
		return nil, err
	}
	defer observe("items", time.Now())
	return query.SortItems(query.FlattenItems(filtered), key, order), nil
}

// Stats summarizes the filtered items.
func (s *Service) Stats(snap *repository.Snapshot, c query.Criteria) (query.Summary, error) {
	filtered, err := s.Filter(snap, c)
	if err != nil {
		return query.Summary{}, err
	}
	defer observe("stats", time.Now())
	return query.Summarize(query.FlattenItems(filtered)), nil
}

// Overview returns the headline view of the whole snapshot.
func (s *Service) Overview(snap *repository.Snapshot) query.OverviewResult {
	defer observe("overview", time.Now())
	return query.Overview(snap.Responses)
}

// Facets returns the distinct models and temperatures of the snapshot.
func (s *Service) Facets(snap *repository.Snapshot) query.Facets {
	defer observe("facets", time.Now())
	return query.FacetsOf(snap.Responses)
}

func observe(op string, start time.Time) {
	metrics.RecordQueryLatency(op, float64(time.Since(start).Microseconds())/1000)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.store.Current()
	stats := map[string]any{
		"started":         s.started,
		"dataDir":         s.dataDir,
		"ratingPolicy":    string(s.policy),
		"loadConcurrency": s.loadConcurrency,
		"watching":        s.watcher != nil,
		"state":           string(snap.State),
		"reason":          string(snap.Reason),
		"snapshotId":      snap.ID,
		"responses":       len(snap.Responses),
		"items":           snap.ItemCount(),
		"diagnostics":     len(snap.Diagnostics),
		"filesSeen":       snap.FilesSeen,
		"filesSkipped":    snap.FilesSkipped,
		"reloads":         s.store.Reloads(),
		"modelNames":      maps.Clone(s.modelNames),
	}
	if !snap.LoadedAt.IsZero() {
		stats["loadedAt"] = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	if s.watcher != nil {
		ws := s.watcher.Stats()
		stats["watchEvents"] = ws.Events
		stats["watchTriggers"] = ws.Triggers
	}
	return stats
}
