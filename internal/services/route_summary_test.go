package services

import (
	"testing"
)

func TestSummarizeRoutes(t *testing.T) {
	set, err := newTestRanker(t).Rank(scenarioCandidates())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	got := SummarizeRoutes(set)
	want := RouteSummary{
		TotalRoutes:         3,
		AverageTimeMinutes:  14.7,
		AverageDistanceKm:   5.0,
		AverageDelayMinutes: 4.7,
		MinTimeMinutes:      10.0,
		MaxTimeMinutes:      23.3,
	}

	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	if got := SummarizeRoutes(nil); got != (RouteSummary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestCalculateTimeSavings(t *testing.T) {
	r := newTestRanker(t)

	set, err := r.Rank(scenarioCandidates())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	got, ok := CalculateTimeSavings(set)
	if !ok {
		t.Fatal("expected savings for three routes")
	}
	if got != (TimeSavings{MaxSavingsSeconds: 800, FastestSeconds: 600, SlowestSeconds: 1400}) {
		t.Fatalf("unexpected savings: %+v", got)
	}

	single, err := r.Rank(scenarioCandidates()[:1])
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if _, ok := CalculateTimeSavings(single); ok {
		t.Fatal("expected no savings for a single route")
	}
}
