// README: Offering rows, filters and results produced by the engine.
package offering

import (
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/pricing"
	"rentalpromo/internal/modules/servicepoint"
	"rentalpromo/internal/types"
)

type Mode string

const (
	// ModeNearby ranks service points by promotion presence and distance.
	ModeNearby Mode = "nearby"
	// ModeJoined lists the discounted models of an agent's joined programs.
	ModeJoined Mode = "joined"
)

// Row is one ranked result. Nearby rows carry ServicePoint, DistanceKm and
// HasPromotion; joined rows carry ProgramID, Model and prices.
type Row struct {
	ServicePointID   string                     `json:"service_point_id,omitempty"`
	ServicePoint     *servicepoint.ServicePoint `json:"service_point,omitempty"`
	ProgramID        string                     `json:"program_id,omitempty"`
	ProgramName      string                     `json:"program_name,omitempty"`
	Model            *catalog.VehicleModel      `json:"model,omitempty"`
	BasePricePerDay  pricing.Amount             `json:"base_price_per_day"`
	FinalPricePerDay pricing.Amount             `json:"final_price_per_day"`
	DistanceKm       types.Maybe[float64]       `json:"distance_km"`
	HasPromotion     bool                       `json:"has_promotion"`
}

// Filters narrow and page a resolution.
type Filters struct {
	// AgentID selects whose joined programs ModeJoined lists. Empty means
	// anonymous, which always yields no rows.
	AgentID string
	Query   string
	// MaxKm bounds distance when known. Rows with Unknown distance then
	// need IncludeUnknownDistance.
	MaxKm                  types.Maybe[float64]
	IncludeUnknownDistance bool
	// Owners, when set, restricts nearby rows to these owner ids.
	Owners []string
	Offset int
	Limit  int
}

// Result is never an error: Unavailable marks a failed catalog scan and
// Partial marks omitted batches or a missing program list.
type Result struct {
	Rows        []Row `json:"rows"`
	Total       int   `json:"total"`
	Unavailable bool  `json:"unavailable"`
	Partial     bool  `json:"partial"`
}

func (r Row) discount() pricing.Amount {
	return pricing.Savings(r.BasePricePerDay, r.FinalPricePerDay)
}
