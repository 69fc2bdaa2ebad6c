package api

import (
	"context"
	"net/http"
)

// YearsDependencies defines the interface for listing loaded years.
type YearsDependencies interface {
	Years(ctx context.Context) []int
}

// YearsHandler handles year listing requests.
type YearsHandler struct {
	deps YearsDependencies
}

// NewYearsHandler creates a new years handler.
func NewYearsHandler(deps YearsDependencies) *YearsHandler {
	return &YearsHandler{deps: deps}
}

type yearsResponse struct {
	Years []int `json:"years"`
}

// HandleGetYears handles GET /years requests.
func (h *YearsHandler) HandleGetYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	years := h.deps.Years(r.Context())
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, yearsResponse{Years: years})
}
