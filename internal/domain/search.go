package domain

import (
	"fmt"
	"strings"
	"time"
)

type TrafficModel string

const (
	TrafficModelBestGuess   TrafficModel = "best_guess"
	TrafficModelOptimistic  TrafficModel = "optimistic"
	TrafficModelPessimistic TrafficModel = "pessimistic"
)

// ParseTrafficModel accepts API values and display labels such as "Best Guess".
func ParseTrafficModel(s string) (TrafficModel, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	switch TrafficModel(norm) {
	case "":
		return TrafficModelBestGuess, nil
	case TrafficModelBestGuess, TrafficModelOptimistic, TrafficModelPessimistic:
		return TrafficModel(norm), nil
	}
	return "", fmt.Errorf("traffic model %q: %w", s, ErrInvalidInput)
}

// A geocoded address.
type Place struct {
	PlaceID          string
	FormattedAddress string
	Location         Coordinates
}

// An autocomplete prediction.
type PlaceSuggestion struct {
	PlaceID     string
	Description string
}

// Represents a single past route search for a session.
type SearchEntry struct {
	StartAddress string
	EndAddress   string
	SearchedAt   time.Time
}

// A live traffic incident reported by the 511NY feed.
type TrafficEvent struct {
	Road        string
	Description string
	Severity    string
	StartTime   string
	EndTime     string
	// Location is nil when the feed omits or garbles coordinates.
	Location *Coordinates
}
