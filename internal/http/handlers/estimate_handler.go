// README: Fare estimate handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
)

type EstimateHandler struct {
	pricing *pricing.Service
}

func NewEstimateHandler(svc *pricing.Service) *EstimateHandler {
	return &EstimateHandler{pricing: svc}
}

type estimateReq struct {
	Source      booking.Place    `json:"source"`
	Destination booking.Place    `json:"destination"`
	VehicleType string           `json:"vehicleType"`
	TripType    pricing.TripType `json:"tripType"`
}

// Estimate prices a prospective trip. A request whose places are still
// missing coordinates gets 202: not an error, just not yet computable.
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	est, err := h.pricing.Estimate(c.Request.Context(),
		req.Source.Point(), req.Destination.Point(), req.VehicleType, req.TripType)
	if err != nil {
		if errors.Is(err, pricing.ErrNotComputable) {
			c.JSON(http.StatusAccepted, gin.H{"status": "not_computable"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// Catalog exposes the vehicle classes with their rates and advisory minimum
// km for the booking form.
func (h *EstimateHandler) Catalog(c *gin.Context) {
	cat := h.pricing.Catalog()
	c.JSON(http.StatusOK, gin.H{"version": cat.Version, "vehicles": cat.Vehicles})
}
