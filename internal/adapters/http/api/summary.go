package api

import (
	"net/http"

	"github.com/okian/statusboard/internal/domain/types"
)

// SummaryHandler serves statistics over the filtered items.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetStats handles GET /api/stats requests. An empty selection is
// reported with no_data rather than zeroed averages.
func (h *SummaryHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap := h.deps.Snapshot()
	summary, err := h.deps.Stats(snap, c)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.StatsResponse{
		Meta:    snap.Meta(),
		NoData:  !summary.HasData(),
		Summary: summary,
	})
}

// OverviewHandler serves the dashboard header figures.
type OverviewHandler struct {
	deps Dependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps Dependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleGetOverview handles GET /api/overview requests.
func (h *OverviewHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Snapshot()
	o := h.deps.Overview(snap)
	o.Models = orEmpty(o.Models)
	o.Temperatures = orEmpty(o.Temperatures)
	writeJSON(w, http.StatusOK, types.OverviewResponse{
		Meta:           snap.Meta(),
		OverviewResult: o,
		DisplayNames:   h.deps.DisplayNames(o.Models),
	})
}

// FacetsHandler serves the distinct filter values.
type FacetsHandler struct {
	deps Dependencies
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps Dependencies) *FacetsHandler {
	return &FacetsHandler{deps: deps}
}

// HandleGetFacets handles GET /api/facets requests.
func (h *FacetsHandler) HandleGetFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Snapshot()
	f := h.deps.Facets(snap)
	f.Models = orEmpty(f.Models)
	f.Temperatures = orEmpty(f.Temperatures)
	writeJSON(w, http.StatusOK, types.FacetsResponse{
		Meta:         snap.Meta(),
		Facets:       f,
		DisplayNames: h.deps.DisplayNames(f.Models),
	})
}
