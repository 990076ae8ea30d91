package catalog

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Accessors(t *testing.T) {
	r := Record{ID: "x", Data: map[string]any{
		"name":        "  ",
		"companyName": "Da Nang Wheels",
		"price":       "120000",
		"capacity":    json.Number("4"),
		"isActive":    "false",
		"tags":        []any{"a", "b"},
	}}

	assert.Equal(t, "Da Nang Wheels", r.String("name", "companyName"))
	assert.Equal(t, "", r.String("missing"))

	f, ok := r.Float("pricePerDay", "price")
	assert.True(t, ok)
	assert.Equal(t, 120000.0, f)

	f, ok = r.Float("capacity")
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	assert.False(t, r.Bool("isActive", true))
	assert.True(t, r.Bool("missing", true))
	assert.Len(t, r.List("tags"), 2)
	assert.Nil(t, r.List("name"))
	assert.True(t, r.Has("missing", "tags"))
}

func TestRecord_FloatRejectsNonFinite(t *testing.T) {
	r := Record{ID: "x", Data: map[string]any{
		"nan":      "NaN",
		"inf":      "Infinity",
		"negInf":   "-Inf",
		"rawInf":   math.Inf(1),
		"rawNaN":   math.NaN(),
		"fallback": "250",
	}}

	for _, key := range []string{"nan", "inf", "negInf", "rawInf", "rawNaN"} {
		_, ok := r.Float(key)
		assert.False(t, ok, key)
	}

	f, ok := r.Float("nan", "fallback")
	assert.True(t, ok)
	assert.Equal(t, 250.0, f)
}

func TestRecord_Time(t *testing.T) {
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  any
		ok   bool
	}{
		{"time value", want, true},
		{"rfc3339", "2026-03-01T00:00:00Z", true},
		{"date only", "2026-03-01", true},
		{"epoch millis", float64(want.UnixMilli()), true},
		{"firestore export", map[string]any{"_seconds": float64(want.Unix()), "_nanoseconds": 0.0}, true},
		{"seconds map", map[string]any{"seconds": want.Unix()}, true},
		{"garbage", "next tuesday", false},
		{"zero time", time.Time{}, false},
		{"absent", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{Data: map[string]any{"startDate": tt.raw}}.Time("startDate")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(want), "got %v", got)
			}
		})
	}
}

func TestDecodeVehicleModel(t *testing.T) {
	m := DecodeVehicleModel(Record{ID: "m1", Data: map[string]any{
		"name":        "Vision 2024",
		"vehicleType": "Scooter",
		"brand":       "Honda",
		"pricePerDay": 150000,
		"topSpeed":    "90",
	}})
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, VehicleMotorbike, m.VehicleType)
	assert.Equal(t, 150000.0, m.PricePerDay.Value)
	assert.True(t, m.PricePerDay.Known)
	assert.Equal(t, 90.0, m.TopSpeed.Value)
	assert.False(t, m.Range.Known)

	noPrice := DecodeVehicleModel(Record{ID: "m2", Data: map[string]any{"name": "Old"}})
	assert.False(t, noPrice.PricePerDay.Known)
	assert.Equal(t, VehicleOther, noPrice.VehicleType)
}

func TestCanonicalVehicleType(t *testing.T) {
	cases := map[string]VehicleType{
		"bicycle":    VehicleBike,
		"E-Bike":     VehicleBike,
		"scooter":    VehicleMotorbike,
		"xe_may":     VehicleMotorbike,
		"Sedan":      VehicleCar,
		"SUV":        VehicleCar,
		"minivan":    VehicleVan,
		"coach":      VehicleBus,
		"bus":        VehicleBus,
		"hovercraft": VehicleOther,
		"":           VehicleOther,
	}
	for in, want := range cases {
		if got := CanonicalVehicleType(in); got != want {
			t.Errorf("CanonicalVehicleType(%q) = %s, want %s", in, got, want)
		}
	}
}
