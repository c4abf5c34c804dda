package handlers

import (
	"net/http"
	"nyc-route-optimizer/internal/api/dto"
	"nyc-route-optimizer/internal/ports"
)

type PlaceHandler struct {
	Places ports.PlaceSuggester
}

func (h *PlaceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.Places == nil {
		writeError(w, r, http.StatusServiceUnavailable, "autocomplete is not configured")
		return
	}

	suggestions, err := h.Places.Autocomplete(r.Context(), r.URL.Query().Get("input"))
	if err != nil {
		writeDomainError(w, r, "autocomplete", err)
		return
	}

	res := dto.ListSuggestionsResponse{
		Suggestions: make([]dto.SuggestionResponse, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		res.Suggestions = append(res.Suggestions, dto.SuggestionResponse{
			PlaceID:     s.PlaceID,
			Description: s.Description,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
