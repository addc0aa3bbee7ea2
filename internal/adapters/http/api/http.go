// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/statusboard/internal/adapters/repository"
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/query"
)

// Dependencies required by HTTP handlers. Every query takes the snapshot
// explicitly so that one request sees one consistent collection.
type Dependencies interface {
	Snapshot() *repository.Snapshot
	Reload(ctx context.Context) (*repository.Snapshot, error)

	Filter(snap *repository.Snapshot, c query.Criteria) ([]model.ModelResponse, error)
	Items(snap *repository.Snapshot, c query.Criteria, key query.SortKey, order query.Order) ([]model.FlatItem, error)
	Stats(snap *repository.Snapshot, c query.Criteria) (query.Summary, error)
	Overview(snap *repository.Snapshot) query.OverviewResult
	Facets(snap *repository.Snapshot) query.Facets
	DisplayNames(models []string) map[string]string
}

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	metricsHandler     http.Handler
	dataHandler        *DataHandler
	responsesHandler   *ResponsesHandler
	itemsHandler       *ItemsHandler
	summaryHandler     *SummaryHandler
	overviewHandler    *OverviewHandler
	facetsHandler      *FacetsHandler
	diagnosticsHandler *DiagnosticsHandler
	reloadHandler      *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(deps),
		statsHandler:       NewStatsHandler(statsProvider),
		metricsHandler:     NewMetricsHandler(),
		dataHandler:        NewDataHandler(deps),
		responsesHandler:   NewResponsesHandler(deps),
		itemsHandler:       NewItemsHandler(deps),
		summaryHandler:     NewSummaryHandler(deps),
		overviewHandler:    NewOverviewHandler(deps),
		facetsHandler:      NewFacetsHandler(deps),
		diagnosticsHandler: NewDiagnosticsHandler(deps),
		reloadHandler:      NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", s.metricsHandler)

	mux.HandleFunc("/api/data", MetricsMiddleware(s.dataHandler.HandleGetData, "data"))
	mux.HandleFunc("/api/responses", MetricsMiddleware(s.responsesHandler.HandleGetResponses, "responses"))
	mux.HandleFunc("/api/items", MetricsMiddleware(s.itemsHandler.HandleGetItems, "items"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.summaryHandler.HandleGetStats, "summary"))
	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleGetOverview, "overview"))
	mux.HandleFunc("/api/facets", MetricsMiddleware(s.facetsHandler.HandleGetFacets, "facets"))
	mux.HandleFunc("/api/diagnostics", MetricsMiddleware(s.diagnosticsHandler.HandleGetDiagnostics, "diagnostics"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// orEmpty keeps empty collections serialized as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
