package domain

import "github.com/paulmach/orb"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as an orb point, which orders axes [lng, lat].
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// Return coordinates as [lng, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

func CoordinatesFromPoint(p orb.Point) Coordinates {
	return Coordinates{Lat: p.Lat(), Lng: p.Lon()}
}
