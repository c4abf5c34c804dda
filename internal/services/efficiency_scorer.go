package services

import (
	"fmt"
	"nyc-route-optimizer/internal/domain"
)

// Scorer computes 0-100 efficiency scores that are relative to the other
// candidates of the same route request.
//
// A Scorer holds only immutable configuration and is safe for concurrent use.
type Scorer struct {
	weights ScoringWeights
	strict  bool
}

func NewScorer(cfg ScoringConfig) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scorer: %w", err)
	}
	return &Scorer{weights: cfg.Weights, strict: cfg.Strict}, nil
}

// normalization holds the per-request bases for the time and distance components.
type normalization struct {
	maxDuration  int
	maxDistance  int
	flatDuration bool
	flatDistance bool
}

func normalizationFor(all []domain.RouteCandidate) normalization {
	n := normalization{
		maxDuration: all[0].DurationInTrafficSeconds,
		maxDistance: all[0].DistanceMeters,
	}
	minDuration, minDistance := n.maxDuration, n.maxDistance

	for _, c := range all[1:] {
		n.maxDuration = max(n.maxDuration, c.DurationInTrafficSeconds)
		n.maxDistance = max(n.maxDistance, c.DistanceMeters)
		minDuration = min(minDuration, c.DurationInTrafficSeconds)
		minDistance = min(minDistance, c.DistanceMeters)
	}

	// Identical values (all zero included) would divide by zero or score every
	// candidate 0 on that axis; both cases collapse to a neutral 1.0.
	n.flatDuration = minDuration == n.maxDuration
	n.flatDistance = minDistance == n.maxDistance

	return n
}

// DelayOf returns the traffic delay clamped to >= 0 and its ratio to the free-flow
// duration (0 when the free-flow duration is 0).
func DelayOf(c domain.RouteCandidate) (seconds int, ratio float64) {
	seconds = max(0, c.DurationInTrafficSeconds-c.DurationSeconds)
	if c.DurationSeconds > 0 {
		ratio = float64(seconds) / float64(c.DurationSeconds)
	}
	return seconds, ratio
}

// Score returns the efficiency score of candidate within the request's candidate set.
//
// An empty set is a caller bug. In strict mode it panics; otherwise it returns the
// safe default 0 along with ErrEmptyRouteSet.
func (s *Scorer) Score(candidate domain.RouteCandidate, all []domain.RouteCandidate) (float64, error) {
	if len(all) == 0 {
		err := fmt.Errorf("score route: %w", domain.ErrEmptyRouteSet)
		if s.strict {
			panic(err)
		}
		return 0, err
	}

	return s.score(candidate, normalizationFor(all)), nil
}

func (s *Scorer) score(c domain.RouteCandidate, n normalization) float64 {
	timeComponent := 1.0
	if !n.flatDuration {
		timeComponent = 1 - float64(c.DurationInTrafficSeconds)/float64(n.maxDuration)
	}

	distanceComponent := 1.0
	if !n.flatDistance {
		distanceComponent = 1 - float64(c.DistanceMeters)/float64(n.maxDistance)
	}

	_, ratio := DelayOf(c)
	delayComponent := 1 - min(ratio, 1.0)

	score := 100 * (s.weights.Time*timeComponent +
		s.weights.Distance*distanceComponent +
		s.weights.Delay*delayComponent)

	return min(max(score, 0), 100)
}
