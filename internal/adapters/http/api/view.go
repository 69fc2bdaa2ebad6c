package api

import (
	"net/http"

	"github.com/okian/radar/pkg/logger"
)

// ViewHandler serves the dashboard presentation model as JSON.
type ViewHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies, log logger.Logger) *ViewHandler {
	return &ViewHandler{deps: deps, logger: log}
}

// HandleGetView handles GET /view/{year} requests.
func (h *ViewHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	year, err := resolveYear(ctx, r, "/view/", h.deps)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	view, err := h.deps.View(ctx, year)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
