package handlers

import (
	"net/http"
	"nyc-route-optimizer/internal/api/dto"
	"nyc-route-optimizer/internal/ports"
)

// TrafficHandler exposes live 511NY incidents. Source is nil when no key is configured.
type TrafficHandler struct {
	Source ports.TrafficEventSource
}

func (h *TrafficHandler) Events(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.Source == nil {
		writeError(w, r, http.StatusServiceUnavailable, "traffic events are not configured")
		return
	}

	events, err := h.Source.Events(r.Context())
	if err != nil {
		writeDomainError(w, r, "traffic events", err)
		return
	}

	res := dto.ListTrafficEventsResponse{
		Count:  len(events),
		Events: make([]dto.TrafficEventResponse, 0, len(events)),
	}
	for _, e := range events {
		item := dto.TrafficEventResponse{
			Road:        e.Road,
			Description: e.Description,
			Severity:    e.Severity,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
		}
		if e.Location != nil {
			item.Location = e.Location.CoordsToList()
		}
		res.Events = append(res.Events, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
