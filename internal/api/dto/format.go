package dto

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds the way the route cards show them:
// "45 sec", "12 min", "12 min 30 sec", "1 hr", "1 hr 5 min".
func FormatDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d sec", seconds)
	case seconds < 3600:
		m, s := seconds/60, seconds%60
		if s == 0 {
			return fmt.Sprintf("%d min", m)
		}
		return fmt.Sprintf("%d min %d sec", m, s)
	default:
		h, m := seconds/3600, (seconds%3600)/60
		if m == 0 {
			return fmt.Sprintf("%d hr", h)
		}
		return fmt.Sprintf("%d hr %d min", h, m)
	}
}

// FormatDistance renders meters below 1 km as-is, then kilometers with one
// decimal under 10 km and none above.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	km := float64(meters) / 1000
	if km < 10 {
		return fmt.Sprintf("%.1f km", km)
	}
	return fmt.Sprintf("%.0f km", km)
}

// FormatTrafficImpact describes the traffic-adjusted duration against the free-flow one.
func FormatTrafficImpact(duration, inTraffic int) string {
	if inTraffic > duration {
		return fmt.Sprintf("%s (normally %s, +%s due to traffic)",
			FormatDuration(inTraffic), FormatDuration(duration), FormatDuration(inTraffic-duration))
	}
	return fmt.Sprintf("%s (normal: %s)", FormatDuration(inTraffic), FormatDuration(duration))
}

func minutes1(seconds int) float64 {
	return math.Round(float64(seconds)/6) / 10
}
