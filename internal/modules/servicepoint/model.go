// README: Uniform service point shape shared by company stations and private providers.
package servicepoint

import (
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/geo"
)

type Kind string

const (
	KindCompanyStation  Kind = "company_station"
	KindPrivateProvider Kind = "private_provider"
)

// ServicePoint is one place a vehicle can be picked up. Providers without a
// station of their own appear as a single synthetic point whose ID is the
// provider id.
type ServicePoint struct {
	ID               string       `json:"id"`
	Kind             Kind         `json:"kind"`
	OwnerID          string       `json:"owner_id"`
	OwnerDisplayName string       `json:"owner_display_name"`
	Name             string       `json:"name"`
	DisplayAddress   string       `json:"display_address"`
	Position         geo.Position `json:"position"`
}

// Owner fields, in lookup order.
var (
	ownerNameFields    = []string{"name", "companyName", "displayName", "fullName"}
	stationOwnerFields = []string{"companyId", "ownerId", "providerId"}
	stationNameFields  = []string{"name", "stationName", "title"}
	addressFields      = []string{"address", "displayAddress", "addressText", "fullAddress"}
)

// OwnerName is the display name of a company or provider record.
func OwnerName(r catalog.Record) string {
	return r.String(ownerNameFields...)
}
