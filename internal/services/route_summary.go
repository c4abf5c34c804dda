package services

import (
	"math"
	"nyc-route-optimizer/internal/domain"
)

// Aggregate statistics over a RouteSet, rounded to one decimal for display.
type RouteSummary struct {
	TotalRoutes         int
	AverageTimeMinutes  float64
	AverageDistanceKm   float64
	AverageDelayMinutes float64
	MinTimeMinutes      float64
	MaxTimeMinutes      float64
}

// Potential saving from picking the fastest route over the slowest one.
type TimeSavings struct {
	MaxSavingsSeconds int
	FastestSeconds    int
	SlowestSeconds    int
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// SummarizeRoutes returns zero-value statistics for an empty set.
func SummarizeRoutes(set *domain.RouteSet) RouteSummary {
	if set.Len() == 0 {
		return RouteSummary{}
	}

	var timeSum, distSum, delaySum int
	minTime, maxTime := math.MaxInt, math.MinInt
	for _, r := range set.Routes {
		timeSum += r.DurationInTrafficSeconds
		distSum += r.DistanceMeters
		delaySum += r.DelaySeconds
		minTime = min(minTime, r.DurationInTrafficSeconds)
		maxTime = max(maxTime, r.DurationInTrafficSeconds)
	}

	n := float64(len(set.Routes))
	return RouteSummary{
		TotalRoutes:         len(set.Routes),
		AverageTimeMinutes:  round1(float64(timeSum) / n / 60),
		AverageDistanceKm:   round1(float64(distSum) / n / 1000),
		AverageDelayMinutes: round1(float64(delaySum) / n / 60),
		MinTimeMinutes:      round1(float64(minTime) / 60),
		MaxTimeMinutes:      round1(float64(maxTime) / 60),
	}
}

// CalculateTimeSavings compares traffic-adjusted durations. ok is false when there
// are fewer than two routes to compare.
func CalculateTimeSavings(set *domain.RouteSet) (_ TimeSavings, ok bool) {
	if set.Len() < 2 {
		return TimeSavings{}, false
	}

	fastest, slowest := math.MaxInt, math.MinInt
	for _, r := range set.Routes {
		fastest = min(fastest, r.DurationInTrafficSeconds)
		slowest = max(slowest, r.DurationInTrafficSeconds)
	}

	return TimeSavings{
		MaxSavingsSeconds: slowest - fastest,
		FastestSeconds:    fastest,
		SlowestSeconds:    slowest,
	}, true
}
