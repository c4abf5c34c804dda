package dto

import (
	"nyc-route-optimizer/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Route colors by rank; ranks past the palette wrap around.
var RouteColors = []string{"#FF0000", "#0000FF", "#00FF00", "#FF8C00", "#8A2BE2"}

func RouteColor(rank int) string {
	return RouteColors[(rank-1)%len(RouteColors)]
}

type BoundsResponse struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type MapResponse struct {
	Center   []float64                  `json:"center"` // [lng, lat]
	Bounds   *BoundsResponse            `json:"bounds,omitempty"`
	Features *geojson.FeatureCollection `json:"features"`
}

// NewMapResponse renders ranked routes as GeoJSON line features plus start and
// end markers. Score and severity are copied from the routes as-is. Routes whose
// polyline cannot be decoded are left off the map.
func NewMapResponse(start, end domain.Place, routes []RouteResponse, fallbackCenter domain.Coordinates) MapResponse {
	fc := geojson.NewFeatureCollection()

	var bound orb.Bound
	hasBound := false
	extend := func(g orb.Geometry) {
		if !hasBound {
			bound = g.Bound()
			hasBound = true
			return
		}
		bound = bound.Union(g.Bound())
	}

	for _, r := range routes {
		line, err := decodeLine(r.Polyline)
		if err != nil {
			zap.L().Debug("skip undecodable polyline", zap.Int("rank", r.Rank), zap.Error(err))
			continue
		}
		if len(line) == 0 {
			continue
		}

		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		f.Properties["rank"] = r.Rank
		f.Properties["color"] = r.Color
		f.Properties["summary"] = r.Summary
		f.Properties["efficiency_score"] = r.EfficiencyScore
		f.Properties["traffic_severity"] = r.TrafficSeverity
		f.Properties["best"] = r.Rank == 1
		fc.Append(f)
		extend(line)
	}

	for _, marker := range []struct {
		kind  string
		place domain.Place
	}{
		{"start", start},
		{"end", end},
	} {
		pt := marker.place.Location.Point()
		f := geojson.NewFeature(pt)
		f.Properties["kind"] = marker.kind
		f.Properties["address"] = marker.place.FormattedAddress
		fc.Append(f)
		extend(pt)
	}

	out := MapResponse{
		Center:   fallbackCenter.CoordsToList(),
		Features: fc,
	}
	if hasBound {
		out.Center = domain.CoordinatesFromPoint(bound.Center()).CoordsToList()
		out.Bounds = &BoundsResponse{
			North: bound.Top(),
			South: bound.Bottom(),
			East:  bound.Right(),
			West:  bound.Left(),
		}
	}
	return out
}

func decodeLine(polyline string) (orb.LineString, error) {
	if polyline == "" {
		return nil, nil
	}

	pts, err := maps.DecodePolyline(polyline)
	if err != nil {
		return nil, err
	}

	line := make(orb.LineString, 0, len(pts))
	for _, p := range pts {
		line = append(line, orb.Point{p.Lng, p.Lat})
	}
	return line, nil
}
