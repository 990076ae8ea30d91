// README: Live agent location updates.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentalpromo/internal/http/middleware"
	"rentalpromo/internal/modules/geo"
	"rentalpromo/internal/modules/location"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{location: svc}
}

type updateLocationReq struct {
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing id")
		return
	}
	// Only the authenticated agent may update its own location.
	if middleware.CallerUID(c) != id {
		writeError(c, http.StatusForbidden, "forbidden: id does not match authenticated user")
		return
	}
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lng == nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	err := h.location.Update(c.Request.Context(), id, location.Fix{
		Point:      geo.Point{Lat: *req.Lat, Lng: *req.Lng},
		RecordedAt: req.RecordedAt,
	})
	switch {
	case errors.Is(err, location.ErrInvalidFix):
		writeError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, location.ErrLiveDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}
