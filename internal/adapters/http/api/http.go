// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/dashboard"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
)

// latestYear is the path token that selects the most recent year.
const latestYear = "latest"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Years(ctx context.Context) []int
	Record(ctx context.Context, year int) (model.MetricRecord, error)
	Latest(ctx context.Context) (model.MetricRecord, error)
	Alignment(ctx context.Context, year int) (model.AlignmentResult, error)
	Evaluate(ctx context.Context, raw model.RawRecord, w *alignment.Weights) (model.AlignmentResult, error)
	View(ctx context.Context, year int) (dashboard.View, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	yearsHandler     *YearsHandler
	recordsHandler   *RecordsHandler
	alignmentHandler *AlignmentHandler
	viewHandler      *ViewHandler
	dashboardHandler *dashboardHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger logger.Logger
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		yearsHandler:     NewYearsHandler(deps),
		recordsHandler:   NewRecordsHandler(deps, o.logger),
		alignmentHandler: NewAlignmentHandler(deps, o.logger),
		viewHandler:      NewViewHandler(deps, o.logger),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/years", MetricsMiddleware(s.yearsHandler.HandleGetYears, "years"))
	mux.HandleFunc("/records/", MetricsMiddleware(s.recordsHandler.HandleGetRecord, "records"))
	mux.HandleFunc("/alignment", MetricsMiddleware(s.alignmentHandler.HandlePostAlignment, "alignment_evaluate"))
	mux.HandleFunc("/alignment/", MetricsMiddleware(s.alignmentHandler.HandleGetAlignment, "alignment"))
	mux.HandleFunc("/view/", MetricsMiddleware(s.viewHandler.HandleGetView, "view"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before committing the status so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "internal_error", Message: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err and logs it when the fault is ours.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}

// resolveYear parses the trailing path segment after prefix. The token
// "latest" resolves to the most recent loaded year.
func resolveYear(ctx context.Context, r *http.Request, prefix string, deps Dependencies) (int, error) {
	seg := strings.TrimPrefix(r.URL.Path, prefix)
	if seg == "" || strings.Contains(seg, "/") {
		return 0, fmt.Errorf("%w: missing year", ErrBadRequest)
	}
	if strings.EqualFold(seg, latestYear) {
		rec, err := deps.Latest(ctx)
		if err != nil {
			return 0, err
		}
		return rec.Year, nil
	}
	year, err := strconv.Atoi(seg)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: invalid year %q", ErrBadRequest, seg)
	}
	return year, nil
}
