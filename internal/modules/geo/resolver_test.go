package geo

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/type/latlng"
)

func TestResolve_Formats(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Point
	}{
		{"structured lat/lng", map[string]any{"lat": 16.07, "lng": 108.22}, Point{16.07, 108.22}},
		{"structured latitude/longitude", map[string]any{"latitude": 16.07, "longitude": 108.22}, Point{16.07, 108.22}},
		{"structured ints", map[string]any{"lat": 16, "lng": 108}, Point{16, 108}},
		{"json number", map[string]any{"lat": json.Number("16.07"), "lng": json.Number("108.22")}, Point{16.07, 108.22}},
		{"firestore export", map[string]any{"_latitude": 10.5, "_longitude": 106.7}, Point{10.5, 106.7}},
		{"nested geopoint", map[string]any{"geohash": "w6ugq", "geopoint": map[string]any{"latitude": 16.07, "longitude": 108.22}}, Point{16.07, 108.22}},
		{"native geopoint", &latlng.LatLng{Latitude: 21.0278, Longitude: 105.8342}, Point{21.0278, 105.8342}},
		{"point value", Point{1, 2}, Point{1, 2}},
		{"pair text", "16.07,108.22", Point{16.07, 108.22}},
		{"pair text spaced", "  -33.86 , 151.21 ", Point{-33.86, 151.21}},
		{"degree text", "16.07° N, 108.22° E", Point{16.07, 108.22}},
		{"degree text south west", "33.45° S, 70.66° W", Point{-33.45, -70.66}},
		{"degree text lowercase no comma", "10.5°s 20.25°w", Point{-10.5, -20.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.raw).Get()
			require.True(t, ok, "expected a known position")
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	var nilGeo *latlng.LatLng
	var nilPoint *Point
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"typed nil geopoint", nilGeo},
		{"typed nil point", nilPoint},
		{"empty string", ""},
		{"garbage", "near the old market"},
		{"single number", "16.07"},
		{"lat out of range", "91,10"},
		{"lng out of range", map[string]any{"lat": 10.0, "lng": 181.0}},
		{"degree out of range", "95° N, 10° E"},
		{"string members are not numeric", map[string]any{"lat": "16.07", "lng": "108.22"}},
		{"missing lng", map[string]any{"lat": 16.07}},
		{"unsupported type", []float64{16.07, 108.22}},
		{"bool", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Resolve(tt.raw).Known)
		})
	}
}

func TestResolve_RoundTripsEveryEncoding(t *testing.T) {
	for lat := -90.0; lat <= 90.0; lat += 7.5 {
		for lng := -180.0; lng <= 180.0; lng += 11.25 {
			p := Point{Lat: lat, Lng: lng}
			encodings := map[string]any{
				"pair":       fmt.Sprintf("%v,%v", lat, lng),
				"degree":     FormatDegreeText(p),
				"structured": map[string]any{"lat": lat, "lng": lng},
			}
			for name, raw := range encodings {
				got, ok := Resolve(raw).Get()
				if !ok {
					t.Fatalf("%s(%v) resolved to unknown", name, raw)
				}
				if diff := got.Lat - lat; diff > 1e-6 || diff < -1e-6 {
					t.Errorf("%s lat = %v, want %v", name, got.Lat, lat)
				}
				if diff := got.Lng - lng; diff > 1e-6 || diff < -1e-6 {
					t.Errorf("%s lng = %v, want %v", name, got.Lng, lng)
				}
			}
		}
	}
}

func TestResolveWith_PriorityOrder(t *testing.T) {
	first := func(any) (Point, bool) { return Point{1, 1}, true }
	second := func(any) (Point, bool) { return Point{2, 2}, true }
	outOfRange := func(any) (Point, bool) { return Point{100, 0}, true }

	got, _ := ResolveWith([]Parser{first, second}, "x").Get()
	assert.Equal(t, Point{1, 1}, got)

	got, _ = ResolveWith([]Parser{outOfRange, second}, "x").Get()
	assert.Equal(t, Point{2, 2}, got)
}
