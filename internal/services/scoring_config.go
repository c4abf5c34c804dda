package services

import (
	"fmt"
	"math"
	"nyc-route-optimizer/internal/domain"
)

// ScoringWeights are the relative contributions of the normalized time, distance,
// and delay components to an efficiency score. They must be non-negative and sum to 1.
type ScoringWeights struct {
	Time     float64
	Distance float64
	Delay    float64
}

// DefaultScoringWeights is the 40/30/30 product policy.
var DefaultScoringWeights = ScoringWeights{Time: 0.40, Distance: 0.30, Delay: 0.30}

const weightSumTolerance = 1e-9

func (w ScoringWeights) Validate() error {
	if w.Time < 0 || w.Distance < 0 || w.Delay < 0 {
		return fmt.Errorf(
			"scoring weights: negative weight time=%g distance=%g delay=%g: %w",
			w.Time, w.Distance, w.Delay, domain.ErrConfiguration,
		)
	}

	sum := w.Time + w.Distance + w.Delay
	if math.IsNaN(sum) || math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights: sum is %g, want 1.0: %w", sum, domain.ErrConfiguration)
	}

	return nil
}

// ScoringConfig is the configuration surface consumed by the scorer and ranker.
type ScoringConfig struct {
	Weights ScoringWeights

	// Strict makes internal invariant violations panic instead of returning a
	// safe default. Enabled in development.
	Strict bool
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{Weights: DefaultScoringWeights}
}

func (c ScoringConfig) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring config: %w", err)
	}
	return nil
}
