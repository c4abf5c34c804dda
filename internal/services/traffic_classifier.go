package services

import (
	"fmt"
	"math"
	"nyc-route-optimizer/internal/domain"
)

// Delay ratio thresholds separating the severity buckets. Each is the inclusive
// lower bound of the next bucket.
const (
	ModerateDelayRatio = 0.10
	HeavyDelayRatio    = 0.25
	SevereDelayRatio   = 0.50
)

// ClassifyTraffic maps a delay ratio to a severity bucket.
//
// Ratios above 1.0 are valid (travel time more than doubled). A negative ratio means
// the delay was not clamped upstream and is rejected with ErrInvalidInput.
func ClassifyTraffic(delayRatio float64) (domain.TrafficSeverity, error) {
	if math.IsNaN(delayRatio) || delayRatio < 0 {
		return "", fmt.Errorf("classify traffic: delay ratio %g: %w", delayRatio, domain.ErrInvalidInput)
	}

	switch {
	case delayRatio < ModerateDelayRatio:
		return domain.TrafficLight, nil
	case delayRatio < HeavyDelayRatio:
		return domain.TrafficModerate, nil
	case delayRatio < SevereDelayRatio:
		return domain.TrafficHeavy, nil
	default:
		return domain.TrafficSevere, nil
	}
}
