// README: Offering handlers for the nearby and joined showcases.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentalpromo/internal/http/middleware"
	"rentalpromo/internal/modules/geo"
	"rentalpromo/internal/modules/location"
	"rentalpromo/internal/modules/offering"
)

type OfferingHandler struct {
	offering *offering.Service
	location *location.Service
}

func NewOfferingHandler(offeringSvc *offering.Service, locationSvc *location.Service) *OfferingHandler {
	return &OfferingHandler{offering: offeringSvc, location: locationSvc}
}

type offeringsResp struct {
	offering.Result
	Position *location.Acquired `json:"position,omitempty"`
}

// Nearby lists service points ranked by promotion and distance. The
// requester position comes from lat/lng when given, else from the caller's
// live or stored position, else the configured default.
func (h *OfferingHandler) Nearby(c *gin.Context) {
	lat, okLat := queryFloat(c, "lat")
	lng, okLng := queryFloat(c, "lng")
	if !okLat || !okLng || lat.Known != lng.Known {
		writeError(c, http.StatusBadRequest, "lat and lng must be given together as numbers")
		return
	}
	requested := geo.UnknownPosition()
	if lat.Known {
		requested = geo.At(lat.Value, lng.Value)
		if !requested.Known {
			writeError(c, http.StatusBadRequest, "lat/lng out of range")
			return
		}
	}

	maxKm, ok := queryFloat(c, "max_km")
	if !ok || (maxKm.Known && maxKm.Value < 0) {
		writeError(c, http.StatusBadRequest, "invalid max_km")
		return
	}
	offset, limit, ok := page(c)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid offset or limit")
		return
	}

	acquired := location.Acquired{Position: requested, Source: location.SourceRequest}
	if h.location != nil {
		acquired = h.location.Acquire(c.Request.Context(), middleware.CallerUID(c), requested)
	} else if !requested.Known {
		acquired.Source = location.SourceUnknown
	}

	var owners []string
	if raw := strings.TrimSpace(c.Query("owners")); raw != "" {
		owners = strings.Split(raw, ",")
	}

	res := h.offering.ResolveOfferings(c.Request.Context(), offering.ModeNearby, acquired.Position, offering.Filters{
		Query:                  c.Query("q"),
		MaxKm:                  maxKm,
		IncludeUnknownDistance: queryBool(c, "include_unknown"),
		Owners:                 owners,
		Offset:                 offset,
		Limit:                  limit,
	})
	writeJSON(c, http.StatusOK, offeringsResp{Result: res, Position: &acquired})
}

// Joined lists discounted models of the caller's joined programs. Anonymous
// callers get an empty list.
func (h *OfferingHandler) Joined(c *gin.Context) {
	offset, limit, ok := page(c)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid offset or limit")
		return
	}
	res := h.offering.ResolveOfferings(c.Request.Context(), offering.ModeJoined, geo.UnknownPosition(), offering.Filters{
		AgentID: middleware.CallerUID(c),
		Query:   c.Query("q"),
		Offset:  offset,
		Limit:   limit,
	})
	writeJSON(c, http.StatusOK, offeringsResp{Result: res})
}
