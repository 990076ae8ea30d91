package catalog

import "rentalpromo/internal/modules/geo"

// PositionFields are the members a record's coordinates have been stored
// under over time, most recent first.
var PositionFields = []string{"location", "position", "coordinates", "geopoint", "latLng"}

// Position resolves the record's coordinates from the first PositionFields
// member that parses, falling back to top-level lat/lng on the record itself.
func (r Record) Position() geo.Position {
	for _, k := range PositionFields {
		v := r.Raw(k)
		if v == nil {
			continue
		}
		if p := geo.Resolve(v); p.Known {
			return p
		}
	}
	if r.Data == nil {
		return geo.UnknownPosition()
	}
	return geo.Resolve(r.Data)
}
