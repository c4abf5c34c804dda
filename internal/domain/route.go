package domain

import "fmt"

// Represents one navigation instruction within a route leg.
// Steps are passthrough data for display only.
type RouteStep struct {
	Instruction     string
	DistanceMeters  int
	DurationSeconds int
	StartLocation   Coordinates
	EndLocation     Coordinates
}

// Represents one possible path between two points, as returned by a directions provider.
//
// DurationInTrafficSeconds is usually >= DurationSeconds but the provider may return
// equal or lower values for short routes. Polyline, Summary, and Steps are never
// inspected by the scoring code.
type RouteCandidate struct {
	Summary                  string
	DistanceMeters           int
	DurationSeconds          int
	DurationInTrafficSeconds int
	Polyline                 string
	StartAddress             string
	EndAddress               string
	StartLocation            Coordinates
	EndLocation              Coordinates
	Warnings                 []string
	Steps                    []RouteStep
}

// Validate checks the numeric invariants of a candidate.
func (c RouteCandidate) Validate() error {
	if c.DistanceMeters < 0 {
		return fmt.Errorf("distance_meters=%d is negative: %w", c.DistanceMeters, ErrInvalidInput)
	}
	if c.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds=%d is negative: %w", c.DurationSeconds, ErrInvalidInput)
	}
	if c.DurationInTrafficSeconds < 0 {
		return fmt.Errorf("duration_in_traffic_seconds=%d is negative: %w", c.DurationInTrafficSeconds, ErrInvalidInput)
	}
	return nil
}

type TrafficSeverity string

const (
	TrafficLight    TrafficSeverity = "LIGHT"
	TrafficModerate TrafficSeverity = "MODERATE"
	TrafficHeavy    TrafficSeverity = "HEAVY"
	TrafficSevere   TrafficSeverity = "SEVERE"
)

// A RouteCandidate annotated with delay, severity, and efficiency score.
// It is derived data and is not modified after creation.
type ScoredRoute struct {
	RouteCandidate
	DelaySeconds    int
	DelayRatio      float64
	TrafficSeverity TrafficSeverity
	EfficiencyScore float64
}

// A candidate dropped during ranking because it failed validation.
type RejectedCandidate struct {
	Index  int
	Reason string
}

// The ranked output of one scoring request, ordered by descending EfficiencyScore.
// The head element is the recommendation. A RouteSet is created per request and
// carries no state beyond its contents.
type RouteSet struct {
	Routes   []ScoredRoute
	Rejected []RejectedCandidate
}

// Best returns the recommended route. ok is false for a zero-value set.
func (s *RouteSet) Best() (ScoredRoute, bool) {
	if s == nil || len(s.Routes) == 0 {
		return ScoredRoute{}, false
	}
	return s.Routes[0], true
}

func (s *RouteSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Routes)
}
