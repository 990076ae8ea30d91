// Package geo resolves coordinates stored in historical formats and measures
// great-circle distances between them.
package geo

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"rentalpromo/internal/types"
)

// Parser recognises one encoding of a coordinate. It never panics and
// reports ok=false when raw is not in its format.
type Parser func(raw any) (Point, bool)

// DefaultChain lists the supported encodings in priority order.
var DefaultChain = []Parser{
	ParseStructured,
	ParsePairText,
	ParseDegreeText,
}

// Resolve tries every parser of DefaultChain and returns the first in-range
// result, or Unknown.
func Resolve(raw any) Position {
	return ResolveWith(DefaultChain, raw)
}

func ResolveWith(chain []Parser, raw any) Position {
	if raw == nil {
		return UnknownPosition()
	}
	for _, parse := range chain {
		p, ok := parse(raw)
		if !ok || !p.Valid() {
			continue
		}
		return types.Known(p)
	}
	return UnknownPosition()
}

// latLngGetter matches the document store's native geopoint
// (*latlng.LatLng as returned by Firestore).
type latLngGetter interface {
	GetLatitude() float64
	GetLongitude() float64
}

var pairKeys = [][2]string{
	{"lat", "lng"},
	{"latitude", "longitude"},
	{"lat", "lon"},
	{"_latitude", "_longitude"},
}

// nestedKeys hold a geopoint one level down, e.g. {geopoint: {...}, geohash: "..."}.
var nestedKeys = []string{"geopoint", "geoPoint", "location", "coordinates", "position"}

const maxNesting = 2

// ParseStructured accepts a Point, a map with numeric lat/lng (or
// latitude/longitude) members, a nested geopoint map, or any value exposing
// GetLatitude/GetLongitude.
func ParseStructured(raw any) (Point, bool) {
	return parseStructured(raw, 0)
}

func parseStructured(raw any, depth int) (Point, bool) {
	if isNilPointer(raw) {
		return Point{}, false
	}
	switch v := raw.(type) {
	case Point:
		return v, true
	case *Point:
		return *v, true
	case latLngGetter:
		return Point{Lat: v.GetLatitude(), Lng: v.GetLongitude()}, true
	case map[string]float64:
		for _, k := range pairKeys {
			lat, okLat := v[k[0]]
			lng, okLng := v[k[1]]
			if okLat && okLng {
				return Point{Lat: lat, Lng: lng}, true
			}
		}
	case map[string]any:
		for _, k := range pairKeys {
			lat, okLat := number(v[k[0]])
			lng, okLng := number(v[k[1]])
			if okLat && okLng {
				return Point{Lat: lat, Lng: lng}, true
			}
		}
		if depth >= maxNesting {
			return Point{}, false
		}
		for _, k := range nestedKeys {
			if inner, ok := v[k]; ok {
				if p, ok := parseStructured(inner, depth+1); ok {
					return p, true
				}
			}
		}
	}
	return Point{}, false
}

var pairText = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?)\s*,\s*([+-]?\d+(?:\.\d+)?)\s*$`)

// ParsePairText accepts "<lat>,<lng>".
func ParsePairText(raw any) (Point, bool) {
	s, ok := raw.(string)
	if !ok {
		return Point{}, false
	}
	m := pairText.FindStringSubmatch(s)
	if m == nil {
		return Point{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

var degreeText = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*°\s*([NnSs])\s*,?\s*(\d+(?:\.\d+)?)\s*°\s*([EeWw])\s*$`)

// ParseDegreeText accepts "<lat>° N|S, <lng>° E|W". S and W negate the magnitude.
func ParseDegreeText(raw any) (Point, bool) {
	s, ok := raw.(string)
	if !ok {
		return Point{}, false
	}
	m := degreeText.FindStringSubmatch(s)
	if m == nil {
		return Point{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil {
		return Point{}, false
	}
	if strings.EqualFold(m[2], "S") {
		lat = -lat
	}
	if strings.EqualFold(m[4], "W") {
		lng = -lng
	}
	return Point{Lat: lat, Lng: lng}, true
}

// FormatDegreeText renders p in the degree-annotated encoding.
func FormatDegreeText(p Point) string {
	ns, ew := "N", "E"
	lat, lng := p.Lat, p.Lng
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lng < 0 {
		ew, lng = "W", -lng
	}
	return strconv.FormatFloat(lat, 'f', -1, 64) + "° " + ns + ", " +
		strconv.FormatFloat(lng, 'f', -1, 64) + "° " + ew
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func isNilPointer(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
