package api

import (
	"errors"
	"net/http"

	"github.com/okian/statusboard/internal/domain/query"
	"github.com/okian/statusboard/internal/domain/types"
)

// DataHandler serves the full current collection.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleGetData handles GET /api/data requests.
func (h *DataHandler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Snapshot()
	writeJSON(w, http.StatusOK, types.DataResponse{
		Meta:      snap.Meta(),
		Responses: orEmpty(snap.Responses),
	})
}

// ResponsesHandler serves filtered responses.
type ResponsesHandler struct {
	deps Dependencies
}

// NewResponsesHandler creates a new responses handler.
func NewResponsesHandler(deps Dependencies) *ResponsesHandler {
	return &ResponsesHandler{deps: deps}
}

// HandleGetResponses handles GET /api/responses requests.
func (h *ResponsesHandler) HandleGetResponses(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_responses"
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
	responses, err := h.deps.Filter(snap, c)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse{
		Meta:      snap.Meta(),
		Responses: orEmpty(responses),
	})
}

// ItemsHandler serves the flattened, sorted item list.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// HandleGetItems handles GET /api/items requests.
func (h *ItemsHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_items"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	c, err := criteriaFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	key, order, err := sortFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	limit, err := limitFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	snap := h.deps.Snapshot()
	items, err := h.deps.Items(snap, c, key, order)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	total := len(items)
	if limit > 0 && limit < total {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, types.ItemsResponse{
		Meta:  snap.Meta(),
		Sort:  key,
		Order: order,
		Total: total,
		Items: orEmpty(items),
	})
}

// writeQueryError maps query failures: invalid input is the caller's fault,
// anything else is ours.
func writeQueryError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, query.ErrInvalidCriteria) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
