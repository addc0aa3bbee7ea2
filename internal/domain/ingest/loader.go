package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/okian/statusboard/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// DirState describes what happened when the data directory was listed.
type DirState string

// Directory states.
const (
	DirOK         DirState = "ok"
	DirMissing    DirState = "missing"
	DirUnreadable DirState = "unreadable"
)

// Result is the outcome of one load pass.
type Result struct {
	// Responses holds one record per accepted file, in directory-listing order.
	Responses   []model.ModelResponse
	Diagnostics []Diagnostic
	DirState    DirState
	// FilesSeen counts .json candidates; FilesSkipped those that produced no record.
	FilesSeen    int
	FilesSkipped int
	Duration     time.Duration
}

// ItemCount returns the number of items across all loaded responses.
func (r Result) ItemCount() int {
	n := 0
	for _, resp := range r.Responses {
		n += len(resp.Items)
	}
	return n
}

// Loader reads rating files from a directory.
// A Loader holds no per-load state and may be shared.
type Loader struct {
	logger      logger.Logger
	concurrency int
	policy      RatingPolicy
}

// NewLoader creates a loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger:      logger.Get().Named("ingest"),
		concurrency: runtime.NumCPU(),
		policy:      PolicyReject,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the rating policy in effect.
func (l *Loader) Policy() RatingPolicy { return l.policy }

// Load reads every .json file in dir. It never fails: a missing or
// unreadable directory yields an empty result with the matching DirState,
// and a bad file is skipped with a diagnostic.
func (l *Loader) Load(ctx context.Context, dir string) Result {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Warn(ctx, "data directory not found", logger.String("dir", dir))
		return Result{DirState: DirMissing, Responses: []model.ModelResponse{}}
	case err != nil:
		l.logger.Warn(ctx, "data directory unreadable", logger.String("dir", dir), logger.Error(err))
		return Result{DirState: DirUnreadable, Responses: []model.ModelResponse{}}
	case !info.IsDir():
		l.logger.Warn(ctx, "data path is not a directory", logger.String("dir", dir))
		return Result{DirState: DirUnreadable, Responses: []model.ModelResponse{}}
	}
	return l.LoadFS(ctx, os.DirFS(dir))
}

// fileOutcome is the per-file slot filled by the parallel parse.
type fileOutcome struct {
	response *model.ModelResponse
	diags    []Diagnostic
}

// LoadFS is Load over an arbitrary file system rooted at the data directory.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) Result {
	start := time.Now()
	res := Result{DirState: DirOK, Responses: []model.ModelResponse{}}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		res.DirState = DirUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			res.DirState = DirMissing
		}
		l.logger.Warn(ctx, "data directory not listed", logger.String("state", string(res.DirState)), logger.Error(err))
		return res
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	res.FilesSeen = len(names)

	slots := make([]fileOutcome, len(names))
	g := new(errgroup.Group)
	g.SetLimit(l.concurrency)
	for i, name := range names {
		g.Go(func() error {
			slots[i] = l.loadFile(ctx, fsys, name)
			return nil
		})
	}
	_ = g.Wait() // per-file failures are recorded in slots, never returned

	for _, slot := range slots {
		res.Diagnostics = append(res.Diagnostics, slot.diags...)
		if slot.response == nil {
			res.FilesSkipped++
			continue
		}
		res.Responses = append(res.Responses, *slot.response)
	}
	for _, d := range res.Diagnostics {
		metrics.RecordIngestDiagnostic(string(d.Action))
	}

	res.Duration = time.Since(start)
	metrics.RecordIngestDuration(float64(res.Duration.Milliseconds()))
	l.logger.Info(ctx, "data directory loaded",
		logger.Int("files", res.FilesSeen),
		logger.Int("responses", len(res.Responses)),
		logger.Int("skipped", res.FilesSkipped),
		logger.Int("diagnostics", len(res.Diagnostics)),
	)
	return res
}

// loadFile parses a single entry. Failures are contained to the returned slot.
func (l *Loader) loadFile(ctx context.Context, fsys fs.FS, name string) fileOutcome {
	skip := func(err error) fileOutcome {
		l.logger.Warn(ctx, "skipping data file", logger.String("file", name), logger.Error(err))
		metrics.RecordIngestFile("skipped")
		return fileOutcome{diags: []Diagnostic{{File: name, Action: ActionSkipped, Message: err.Error()}}}
	}

	if err := ctx.Err(); err != nil {
		return skip(fmt.Errorf("%w: %w", ErrLoadInterrupted, err))
	}

	key, nameDiags, err := ParseFilename(name)
	if err != nil {
		return skip(err)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return skip(fmt.Errorf("%w: %s: %w", ErrReadFile, name, err))
	}

	items, itemDiags, err := Validate(name, data, l.policy)
	if err != nil {
		return skip(err)
	}

	diags := append(nameDiags, itemDiags...)
	for _, d := range diags {
		l.logger.Debug(ctx, "data file diagnostic",
			logger.String("file", d.File),
			logger.String("field", d.Field),
			logger.String("action", string(d.Action)),
			logger.String("message", d.Message),
		)
	}
	metrics.RecordIngestFile("loaded")
	return fileOutcome{
		response: &model.ModelResponse{
			Model:       key.Model,
			Temperature: key.Temperature,
			Items:       items,
			Source:      name,
		},
		diags: diags,
	}
}
