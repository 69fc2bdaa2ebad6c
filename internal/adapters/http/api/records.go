package api

import (
	"net/http"

	"github.com/okian/radar/pkg/logger"
)

// RecordsHandler serves the raw yearly indicators.
type RecordsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies, log logger.Logger) *RecordsHandler {
	return &RecordsHandler{deps: deps, logger: log}
}

// HandleGetRecord handles GET /records/{year} requests.
func (h *RecordsHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_record"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	year, err := resolveYear(ctx, r, "/records/", h.deps)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	rec, err := h.deps.Record(ctx, year)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
