package handlers

import (
	"net/http"
	"nyc-route-optimizer/internal/api/dto"
)

// HealthHandler reports liveness and which optional integrations are wired.
type HealthHandler struct {
	Places        bool
	TrafficEvents bool
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Features: map[string]bool{
			"places":         h.Places,
			"traffic_events": h.TrafficEvents,
		},
	})
}
