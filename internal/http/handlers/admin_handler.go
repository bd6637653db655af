// README: Admin console handlers: bookings, users, reviews, live stats.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/review"
	"droptaxi/internal/modules/user"
)

type AdminHandler struct {
	bookings *booking.Service
	users    *user.Service
	reviews  *review.Service
}

func NewAdminHandler(bookings *booking.Service, users *user.Service, reviews *review.Service) *AdminHandler {
	return &AdminHandler{bookings: bookings, users: users, reviews: reviews}
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type chargesReq struct {
	Distance       float64 `json:"distance"`
	Duration       int64   `json:"duration"`
	Cost           int64   `json:"cost"`
	TollCharges    int64   `json:"tollCharges"`
	ParkingCharges int64   `json:"parkingCharges"`
	HillCharges    int64   `json:"hillCharges"`
	PermitCharges  int64   `json:"permitCharges"`
}

// SaveCharges overwrites the trip actuals as a batch and persists the
// recomputed total.
func (h *AdminHandler) SaveCharges(c *gin.Context) {
	var req chargesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	b, err := h.bookings.SaveCharges(c.Request.Context(), c.Param("id"), booking.ChargeUpdate{
		Distance:       req.Distance,
		Duration:       req.Duration,
		Cost:           req.Cost,
		TollCharges:    req.TollCharges,
		ParkingCharges: req.ParkingCharges,
		HillCharges:    req.HillCharges,
		PermitCharges:  req.PermitCharges,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "breakdown": booking.Breakdown(b)})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	b, err := h.bookings.SetStatus(c.Request.Context(), c.Param("id"), booking.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func (h *AdminHandler) EnableInvoice(c *gin.Context) {
	if err := h.bookings.EnableInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoiceEnabled": true})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type roleReq struct {
	Role string `json:"role"`
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.users.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": req.Role})
}

// DeleteUser removes a user and every booking they own. The per-step result
// is returned even on failure so the operator can see how far the cascade
// got.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	res, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "cascade": res})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cascade": res})
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns a one-shot dashboard aggregate.
func (h *AdminHandler) Stats(c *gin.Context) {
	bookings, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking.Aggregate(bookings))
}

// StreamStats pushes live dashboard updates over SSE, one event per change
// feed snapshot. The subscription ends with the request context.
func (h *AdminHandler) StreamStats(c *gin.Context) {
	updates, err := h.bookings.Watch(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case u := <-updates:
			c.SSEvent("stats", u)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
