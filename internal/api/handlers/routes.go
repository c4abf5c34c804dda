package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"nyc-route-optimizer/internal/api/dto"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"
	"nyc-route-optimizer/internal/ports"
	"nyc-route-optimizer/internal/services"
	"time"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type RouteHandler struct {
	Suggester *services.RouteSuggester
	// Optional; offers corrections when an address cannot be resolved.
	Places ports.PlaceSuggester
	// Map center when no route geometry is available.
	DefaultCenter domain.Coordinates
}

// Suggest validates the request, ranks the provider's alternatives, and returns
// them with summary statistics and map rendering data.
func (h *RouteHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	// An empty model falls through to the configured default.
	var model domain.TrafficModel
	if req.TrafficModel != "" {
		m, err := domain.ParseTrafficModel(req.TrafficModel)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "traffic_model must be best_guess, optimistic or pessimistic")
			return
		}
		model = m
	}

	svcReq := services.RouteRequest{
		StartAddress: req.StartAddress,
		EndAddress:   req.EndAddress,
		TrafficModel: model,
		MaxRoutes:    req.MaxRoutes,
		SessionID:    req.SessionID,
	}
	if req.DepartAt != nil {
		svcReq.DepartAt = *req.DepartAt
	}

	out, err := h.Suggester.Suggest(r.Context(), svcReq)
	if err != nil {
		h.writeSuggestError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.toResponse(out))
}

// writeSuggestError attaches "did you mean" suggestions when an endpoint is
// unknown or outside the service area.
func (h *RouteHandler) writeSuggestError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *services.AddressError
	unresolved := errors.Is(err, domain.ErrAddressNotFound) || errors.Is(err, domain.ErrOutsideServiceArea)
	if h.Places == nil || !unresolved || !errors.As(err, &ae) {
		writeDomainError(w, r, "suggest routes", err)
		return
	}

	status, msg := domainStatus(err)
	writeJSON(w, r, status, dto.AddressErrorResponse{
		Error:       ae.Field + " " + msg,
		Field:       ae.Field,
		Suggestions: h.addressSuggestions(r.Context(), ae.Address),
	})
}

// addressSuggestions is best effort: a failed lookup yields no suggestions.
func (h *RouteHandler) addressSuggestions(ctx context.Context, address string) []string {
	out := []string{}

	found, err := h.Places.Autocomplete(ctx, address)
	if err != nil {
		zap.L().Debug("address suggestions failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		return out
	}

	for _, s := range found {
		if len(out) == dto.MaxAddressSuggestions {
			break
		}
		out = append(out, s.Description)
	}
	return out
}

func (h *RouteHandler) toResponse(s *services.RouteSuggestion) dto.RoutesResponse {
	routes := make([]dto.RouteResponse, 0, s.Routes.Len())
	for i, sr := range s.Routes.Routes {
		routes = append(routes, toRouteResponse(i+1, sr))
	}

	res := dto.RoutesResponse{
		Start:        toPlaceResponse(s.Start),
		End:          toPlaceResponse(s.End),
		DepartAt:     s.DepartAt,
		TrafficModel: string(s.TrafficModel),
		Routes:       routes,
		Summary: dto.SummaryResponse{
			TotalRoutes:         s.Summary.TotalRoutes,
			AverageTimeMinutes:  s.Summary.AverageTimeMinutes,
			AverageDistanceKm:   s.Summary.AverageDistanceKm,
			AverageDelayMinutes: s.Summary.AverageDelayMinutes,
			MinTimeMinutes:      s.Summary.MinTimeMinutes,
			MaxTimeMinutes:      s.Summary.MaxTimeMinutes,
		},
		Map: dto.NewMapResponse(s.Start, s.End, routes, h.DefaultCenter),
	}
	if len(routes) > 0 {
		best := routes[0]
		res.BestRoute = &best
	}
	if s.Savings != nil {
		res.TimeSavings = dto.NewTimeSavingsResponse(
			s.Savings.MaxSavingsSeconds, s.Savings.FastestSeconds, s.Savings.SlowestSeconds)
	}
	for _, rej := range s.Routes.Rejected {
		res.Rejected = append(res.Rejected, dto.RejectedResponse{Index: rej.Index, Reason: rej.Reason})
	}

	return res
}

func toPlaceResponse(p domain.Place) dto.PlaceResponse {
	return dto.PlaceResponse{
		PlaceID:          p.PlaceID,
		FormattedAddress: p.FormattedAddress,
		Location:         p.Location.CoordsToList(),
	}
}

func toRouteResponse(rank int, sr domain.ScoredRoute) dto.RouteResponse {
	steps := make([]dto.RouteStepResponse, 0, len(sr.Steps))
	for _, st := range sr.Steps {
		steps = append(steps, dto.RouteStepResponse{
			Instruction:     st.Instruction,
			DistanceMeters:  st.DistanceMeters,
			DurationSeconds: st.DurationSeconds,
		})
	}

	warnings := sr.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return dto.RouteResponse{
		Rank:                     rank,
		Color:                    dto.RouteColor(rank),
		Summary:                  sr.Summary,
		DistanceMeters:           sr.DistanceMeters,
		DistanceText:             dto.FormatDistance(sr.DistanceMeters),
		DurationSeconds:          sr.DurationSeconds,
		DurationText:             dto.FormatDuration(sr.DurationSeconds),
		DurationInTrafficSeconds: sr.DurationInTrafficSeconds,
		DurationInTrafficText:    dto.FormatDuration(sr.DurationInTrafficSeconds),
		TrafficImpactText:        dto.FormatTrafficImpact(sr.DurationSeconds, sr.DurationInTrafficSeconds),
		DelaySeconds:             sr.DelaySeconds,
		DelayPercentage:          math.Round(sr.DelayRatio*1000) / 10,
		TrafficSeverity:          string(sr.TrafficSeverity),
		EfficiencyScore:          math.Round(sr.EfficiencyScore*100) / 100,
		Polyline:                 sr.Polyline,
		StartAddress:             sr.StartAddress,
		EndAddress:               sr.EndAddress,
		Warnings:                 warnings,
		Steps:                    steps,
	}
}

// History lists recent searches for a session.
func (h *RouteHandler) History(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	entries, err := h.Suggester.RecentSearches(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, r, "recent searches", err)
		return
	}

	res := dto.ListHistoryResponse{
		SessionID: sessionID,
		Searches:  make([]dto.SearchEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Searches = append(res.Searches, dto.SearchEntryResponse{
			StartAddress: e.StartAddress,
			EndAddress:   e.EndAddress,
			SearchedAt:   e.SearchedAt.In(time.UTC),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
