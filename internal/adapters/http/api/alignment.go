package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
)

// maxBodyBytes bounds POST /alignment payloads.
const maxBodyBytes = 64 << 10

// AlignmentHandler computes the alignment index for loaded years and for
// caller-supplied records.
type AlignmentHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewAlignmentHandler creates a new alignment handler.
func NewAlignmentHandler(deps Dependencies, log logger.Logger) *AlignmentHandler {
	return &AlignmentHandler{deps: deps, logger: log}
}

// evaluateRequest mirrors the OpenAPI schema for POST /alignment.
type evaluateRequest struct {
	Record  *model.RawRecord   `json:"record"`
	Weights *alignment.Weights `json:"weights,omitempty"`
}

type alignmentResponse struct {
	Year   int          `json:"year"`
	Score  float64      `json:"score"`
	Status model.Status `json:"status"`
}

// HandleGetAlignment handles GET /alignment/{year} requests.
func (h *AlignmentHandler) HandleGetAlignment(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_alignment"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	year, err := resolveYear(ctx, r, "/alignment/", h.deps)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	res, err := h.deps.Alignment(ctx, year)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, alignmentResponse{Year: year, Score: res.Score, Status: res.Status})
}

// HandlePostAlignment handles POST /alignment requests.
func (h *AlignmentHandler) HandlePostAlignment(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_alignment"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	var req evaluateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeFailure(ctx, w, h.logger, decodeError(op, err))
		return
	}
	if req.Record == nil {
		writeFailure(ctx, w, h.logger, WrapKind(op, ErrBadRequest, errors.New("missing record")))
		return
	}

	res, err := h.deps.Evaluate(ctx, *req.Record, req.Weights)
	if err != nil {
		writeFailure(ctx, w, h.logger, Wrap(op, err))
		return
	}
	year := 0
	if req.Record.Year != nil {
		year = *req.Record.Year
	}
	writeJSON(w, http.StatusOK, alignmentResponse{Year: year, Score: res.Score, Status: res.Status})
}

// decodeError turns a typed JSON mismatch into InvalidInput naming the field;
// anything else is a malformed request.
func decodeError(op string, err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		field := strings.TrimPrefix(te.Field, "record.")
		return Wrap(op, model.NewInvalidInput(0, field, fmt.Sprintf("expected %s, got %s", te.Type, te.Value)))
	}
	return WrapKind(op, ErrBadRequest, err)
}
