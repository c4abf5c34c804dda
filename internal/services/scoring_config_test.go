package services

import (
	"errors"
	"math"
	"nyc-route-optimizer/internal/domain"
	"testing"
)

func TestScoringWeightsValidate(t *testing.T) {
	if err := DefaultScoringWeights.Validate(); err != nil {
		t.Fatalf("default weights rejected: %v", err)
	}
	if err := (ScoringWeights{Time: 1}).Validate(); err != nil {
		t.Fatalf("single-axis weights rejected: %v", err)
	}

	bad := map[string]ScoringWeights{
		"sum above one": {Time: 0.5, Distance: 0.3, Delay: 0.3},
		"sum below one": {Time: 0.3, Distance: 0.3, Delay: 0.3},
		"negative":      {Time: 1.2, Distance: -0.2, Delay: 0},
		"nan":           {Time: math.NaN(), Distance: 0.5, Delay: 0.5},
	}
	for name, w := range bad {
		if err := w.Validate(); !errors.Is(err, domain.ErrConfiguration) {
			t.Fatalf("%s: expected ErrConfiguration, got %v", name, err)
		}
	}
}

func TestNewRankerFailsFastOnBadWeights(t *testing.T) {
	_, err := NewRanker(ScoringConfig{Weights: ScoringWeights{Time: 0.6, Distance: 0.3, Delay: 0.3}})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
