package api

import (
	"net/http"
)

// StatsProvider reports the loaded dataset and calculator settings.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves service statistics.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests. A nil provider yields an empty
// object rather than a failure so the route stays probeable.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := map[string]interface{}{}
	if h.statsProvider != nil {
		if s := h.statsProvider.GetStats(); s != nil {
			stats = s
		}
	}
	writeJSON(w, http.StatusOK, stats)
}
