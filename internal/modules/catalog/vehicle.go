// README: Vehicle model catalog entry and vehicle type canonicalisation.
package catalog

import (
	"strings"

	"rentalpromo/internal/types"
)

type VehicleType string

const (
	VehicleBike      VehicleType = "bike"
	VehicleMotorbike VehicleType = "motorbike"
	VehicleCar       VehicleType = "car"
	VehicleVan       VehicleType = "van"
	VehicleBus       VehicleType = "bus"
	VehicleOther     VehicleType = "other"
)

var vehicleTypeSynonyms = map[string]VehicleType{
	"bike":        VehicleBike,
	"bicycle":     VehicleBike,
	"e-bike":      VehicleBike,
	"ebike":       VehicleBike,
	"xe dap":      VehicleBike,
	"motorbike":   VehicleMotorbike,
	"motorcycle":  VehicleMotorbike,
	"scooter":     VehicleMotorbike,
	"moped":       VehicleMotorbike,
	"xe may":      VehicleMotorbike,
	"car":         VehicleCar,
	"sedan":       VehicleCar,
	"suv":         VehicleCar,
	"hatchback":   VehicleCar,
	"coupe":       VehicleCar,
	"convertible": VehicleCar,
	"pickup":      VehicleCar,
	"van":         VehicleVan,
	"minivan":     VehicleVan,
	"bus":         VehicleBus,
	"minibus":     VehicleBus,
	"coach":       VehicleBus,
}

// CanonicalVehicleType folds historical spellings onto the six canonical types.
func CanonicalVehicleType(raw string) VehicleType {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", " ")
	if t, ok := vehicleTypeSynonyms[key]; ok {
		return t
	}
	return VehicleOther
}

// VehicleModel is a make/model entry, not an individual unit.
type VehicleModel struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	VehicleType VehicleType          `json:"vehicle_type"`
	Brand       string               `json:"brand,omitempty"`
	FuelType    string               `json:"fuel_type,omitempty"`
	TopSpeed    types.Maybe[float64] `json:"top_speed"`
	Range       types.Maybe[float64] `json:"range"`
	MaxLoad     types.Maybe[float64] `json:"max_load"`
	Capacity    types.Maybe[float64] `json:"capacity"`
	PricePerDay types.Maybe[float64] `json:"price_per_day"`
	ImageURL    string               `json:"image_url,omitempty"`
}

// DecodeVehicleModel reads a vehicle_models record. Missing numbers stay Unknown.
func DecodeVehicleModel(r Record) VehicleModel {
	return VehicleModel{
		ID:          r.ID,
		Name:        r.String("name", "modelName"),
		VehicleType: CanonicalVehicleType(r.String("vehicleType", "type")),
		Brand:       r.String("brand"),
		FuelType:    r.String("fuelType"),
		TopSpeed:    maybeFloat(r, "topSpeed"),
		Range:       maybeFloat(r, "range"),
		MaxLoad:     maybeFloat(r, "maxLoad"),
		Capacity:    maybeFloat(r, "capacity"),
		PricePerDay: maybeFloat(r, "pricePerDay", "price"),
		ImageURL:    r.String("imageUrl", "imageURL", "image"),
	}
}

func maybeFloat(r Record, keys ...string) types.Maybe[float64] {
	if f, ok := r.Float(keys...); ok {
		return types.Known(f)
	}
	return types.Unknown[float64]()
}
