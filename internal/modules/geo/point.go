// README: Canonical geographic point and the Unknown-aware Position wrapper.
package geo

import (
	"math"

	"rentalpromo/internal/types"
)

// Point is a canonical WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Position is a Point that may be Unknown.
type Position = types.Maybe[Point]

// Valid reports whether p lies inside the lat/lng ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// At returns a known Position, or Unknown when the pair is out of range.
func At(lat, lng float64) Position {
	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return types.Unknown[Point]()
	}
	return types.Known(p)
}

func UnknownPosition() Position {
	return types.Unknown[Point]()
}
