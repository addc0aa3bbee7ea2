package api

import (
	"net/http"

	"github.com/okian/statusboard/internal/domain/types"
)

// DiagnosticsHandler serves what the last load defaulted, rejected or skipped.
type DiagnosticsHandler struct {
	deps Dependencies
}

// NewDiagnosticsHandler creates a new diagnostics handler.
func NewDiagnosticsHandler(deps Dependencies) *DiagnosticsHandler {
	return &DiagnosticsHandler{deps: deps}
}

// HandleGetDiagnostics handles GET /api/diagnostics requests.
func (h *DiagnosticsHandler) HandleGetDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Snapshot()
	writeJSON(w, http.StatusOK, types.DiagnosticsResponse{
		Meta:         snap.Meta(),
		FilesSeen:    snap.FilesSeen,
		FilesSkipped: snap.FilesSkipped,
		Diagnostics:  orEmpty(snap.Diagnostics),
	})
}

// ReloadHandler triggers an explicit full reload.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandlePostReload handles POST /api/reload requests and answers with the
// metadata of the snapshot now being served.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reload_failed", WrapKind(op, ErrReload, err))
		return
	}
	writeJSON(w, http.StatusOK, snap.Meta())
}
