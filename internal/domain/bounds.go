package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ServiceArea is the rectangular region in which route endpoints are accepted.
type ServiceArea struct {
	North float64
	South float64
	East  float64
	West  float64
}

// DefaultNYCArea approximates the five boroughs.
var DefaultNYCArea = ServiceArea{
	North: 40.9176,
	South: 40.4774,
	East:  -73.7004,
	West:  -74.2591,
}

// DefaultCenter is Times Square.
var DefaultCenter = Coordinates{Lat: 40.7589, Lng: -73.9851}

func (a ServiceArea) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{a.West, a.South},
		Max: orb.Point{a.East, a.North},
	}
}

// Contains reports whether c lies inside the area, edges included.
func (a ServiceArea) Contains(c Coordinates) bool {
	return a.Bound().Contains(c.Point())
}

func (a ServiceArea) Validate() error {
	if a.South >= a.North {
		return fmt.Errorf("service area: south %.4f must be below north %.4f: %w", a.South, a.North, ErrConfiguration)
	}
	if a.West >= a.East {
		return fmt.Errorf("service area: west %.4f must be below east %.4f: %w", a.West, a.East, ErrConfiguration)
	}
	return nil
}

// String renders the area as "south,west|north,east", the bounds format Google APIs accept.
func (a ServiceArea) String() string {
	return fmt.Sprintf("%g,%g|%g,%g", a.South, a.West, a.North, a.East)
}
