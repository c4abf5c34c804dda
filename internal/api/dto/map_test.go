package dto

import (
	"math"
	"nyc-route-optimizer/internal/domain"
	"testing"
)

func TestRouteColorCycles(t *testing.T) {
	cases := map[int]string{1: "#FF0000", 2: "#0000FF", 5: "#8A2BE2", 6: "#FF0000", 7: "#0000FF"}
	for rank, want := range cases {
		if got := RouteColor(rank); got != want {
			t.Fatalf("rank %d: expected %s, got %s", rank, want, got)
		}
	}
}

func TestNewMapResponse(t *testing.T) {
	start := domain.Place{FormattedAddress: "start", Location: domain.Coordinates{Lat: 40.70, Lng: -74.01}}
	end := domain.Place{FormattedAddress: "end", Location: domain.Coordinates{Lat: 40.80, Lng: -73.95}}
	routes := []RouteResponse{
		{Rank: 1, Color: RouteColor(1), Polyline: "_p~iF~ps|U_ulLnnqC_mqNvxq`@"},
		{Rank: 2, Color: RouteColor(2)},
	}

	m := NewMapResponse(start, end, routes, domain.DefaultCenter)

	if n := len(m.Features.Features); n != 3 {
		t.Fatalf("expected 1 route line and 2 markers, got %d features", n)
	}
	if m.Bounds == nil {
		t.Fatal("expected bounds")
	}
	// The decoded sample polyline spans 38.5..43.252 lat and -126.453..-120.2 lng.
	if math.Abs(m.Bounds.North-43.252) > 1e-9 || math.Abs(m.Bounds.West+126.453) > 1e-9 || m.Bounds.East != -73.95 {
		t.Fatalf("unexpected bounds: %+v", *m.Bounds)
	}
	if got := m.Features.Features[0].Properties["color"]; got != "#FF0000" {
		t.Fatalf("expected best route color #FF0000, got %v", got)
	}
}

func TestNewMapResponseMarkersOnly(t *testing.T) {
	p := domain.Place{Location: domain.Coordinates{Lat: 40.75, Lng: -73.98}}

	m := NewMapResponse(p, p, nil, domain.DefaultCenter)
	if len(m.Center) != 2 || m.Center[0] != -73.98 || m.Center[1] != 40.75 {
		t.Fatalf("expected center on the marker, got %v", m.Center)
	}
}
