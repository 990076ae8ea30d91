// README: Promotion eligibility evaluator.
package promotion

import (
	"slices"
	"time"

	"rentalpromo/internal/modules/servicepoint"
)

// Active reports whether p is a live rental program at now: right type, not
// switched off, and inside a readable date window.
func Active(p Program, now time.Time) bool {
	if p.Type != TypeRental || !p.IsActive || p.badWindow {
		return false
	}
	if !p.StartDate.IsZero() && now.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(now) {
		return false
	}
	return true
}

// Applies reports whether p promotes sp at now.
func Applies(p Program, sp servicepoint.ServicePoint, now time.Time) bool {
	if !Active(p, now) {
		return false
	}
	if p.CompanyID != "" && p.CompanyID != sp.OwnerID {
		return false
	}
	if len(p.StationTargets) > 0 {
		return slices.Contains(p.StationTargets, sp.ID)
	}
	return true
}

// AnyApplies reports whether at least one program promotes sp.
func AnyApplies(programs []Program, sp servicepoint.ServicePoint, now time.Time) bool {
	for _, p := range programs {
		if Applies(p, sp, now) {
			return true
		}
	}
	return false
}
