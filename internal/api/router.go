package api

import (
	"net/http"
	"nyc-route-optimizer/internal/api/handlers"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/ports"
	"nyc-route-optimizer/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// places and events may be nil; their endpoints then answer 503.
func NewRouter(
	suggester *services.RouteSuggester,
	places ports.PlaceSuggester,
	events ports.TrafficEventSource,
	center domain.Coordinates,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Suggester: suggester, Places: places, DefaultCenter: center}
	placeHandler := &handlers.PlaceHandler{Places: places}
	trafficHandler := &handlers.TrafficHandler{Source: events}
	healthHandler := &handlers.HealthHandler{Places: places != nil, TrafficEvents: events != nil}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/routes", routeHandler.Suggest)
	mux.HandleFunc("/history", routeHandler.History)
	mux.HandleFunc("/places/autocomplete", placeHandler.Autocomplete)
	mux.HandleFunc("/traffic/events", trafficHandler.Events)

	return requestIDMiddleware(loggingMiddleware(recoverMiddleware(mux)))
}
