package services

import (
	"fmt"
	"math"
	"nyc-route-optimizer/internal/domain"
	"slices"
)

// Scores closer than this are treated as equal during ranking.
const scoreEpsilon = 1e-6

// Ranker turns raw route candidates into a ranked RouteSet.
//
// Ranking is pure: it reads an immutable snapshot of candidates, allocates a new
// RouteSet, and keeps no state between calls, so concurrent requests need no locking.
type Ranker struct {
	scorer *Scorer
}

// NewRanker validates cfg and returns a Ranker. Configuration errors surface here,
// at startup, and never at request time.
func NewRanker(cfg ScoringConfig) (*Ranker, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, fmt.Errorf("new ranker: %w", err)
	}
	return &Ranker{scorer: scorer}, nil
}

// Rank scores every valid candidate and orders them best first.
//
// Malformed candidates are dropped and listed in RouteSet.Rejected. When no valid
// candidate remains the result is ErrNoRoutesAvailable.
func (r *Ranker) Rank(candidates []domain.RouteCandidate) (*domain.RouteSet, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("rank routes: %w", domain.ErrNoRoutesAvailable)
	}

	valid := make([]domain.RouteCandidate, 0, len(candidates))
	var rejected []domain.RejectedCandidate
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			rejected = append(rejected, domain.RejectedCandidate{Index: i, Reason: err.Error()})
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf(
			"rank routes: all %d candidates rejected: %w",
			len(candidates), domain.ErrNoRoutesAvailable,
		)
	}

	norm := normalizationFor(valid)

	routes := make([]domain.ScoredRoute, 0, len(valid))
	for _, c := range valid {
		scored, err := r.scoreRoute(c, norm)
		if err != nil {
			return nil, fmt.Errorf("rank routes: %w", err)
		}
		routes = append(routes, scored)
	}

	// Stable sort keeps provider order for full ties.
	slices.SortStableFunc(routes, compareScoredRoutes)

	return &domain.RouteSet{Routes: routes, Rejected: rejected}, nil
}

func (r *Ranker) scoreRoute(c domain.RouteCandidate, n normalization) (domain.ScoredRoute, error) {
	delaySeconds, delayRatio := DelayOf(c)

	severity, err := ClassifyTraffic(delayRatio)
	if err != nil {
		return domain.ScoredRoute{}, fmt.Errorf("score route %q: %w", c.Summary, err)
	}

	// Copy slices so the result shares no backing arrays with the caller's input.
	c.Warnings = slices.Clone(c.Warnings)
	c.Steps = slices.Clone(c.Steps)

	return domain.ScoredRoute{
		RouteCandidate:  c,
		DelaySeconds:    delaySeconds,
		DelayRatio:      delayRatio,
		TrafficSeverity: severity,
		EfficiencyScore: r.scorer.score(c, n),
	}, nil
}

// scoreBucket snaps a score onto the scoreEpsilon grid. Comparing buckets
// rather than |a-b| <= epsilon keeps the ordering transitive; two scores
// closer than epsilon can still straddle a bucket boundary.
func scoreBucket(score float64) float64 {
	return math.Round(score / scoreEpsilon)
}

// compareScoredRoutes orders by descending score bucket, then ascending traffic duration.
func compareScoredRoutes(a, b domain.ScoredRoute) int {
	if ka, kb := scoreBucket(a.EfficiencyScore), scoreBucket(b.EfficiencyScore); ka != kb {
		if ka > kb {
			return -1
		}
		return 1
	}

	switch {
	case a.DurationInTrafficSeconds < b.DurationInTrafficSeconds:
		return -1
	case a.DurationInTrafficSeconds > b.DurationInTrafficSeconds:
		return 1
	}
	return 0
}
