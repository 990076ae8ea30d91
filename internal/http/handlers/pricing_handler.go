// README: Live price preview for the discount editor.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalpromo/internal/modules/pricing"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) Preview(c *gin.Context) {
	var req pricing.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.pricing.Preview(c.Request.Context(), req)
	switch {
	case errors.Is(err, pricing.ErrInvalidDiscountType), errors.Is(err, pricing.ErrMissingBase):
		writeError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, res)
}
