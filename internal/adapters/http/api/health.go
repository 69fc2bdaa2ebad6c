package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/radar/pkg/metrics"
)

// HealthHandler answers liveness probes with the Prometheus exposition of
// the radar registry.
type HealthHandler struct {
	exposition http.Handler
}

// NewHealthHandler creates a health handler over the service registry.
func NewHealthHandler() *HealthHandler {
	return newHealthHandler(metrics.GetRegistry())
}

func newHealthHandler(g prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{
		exposition: promhttp.HandlerFor(g, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.exposition.ServeHTTP(w, r)
}
