// README: Review handlers: submit, list own, public wall.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/http/middleware"
	"droptaxi/internal/modules/review"
)

type ReviewHandler struct {
	reviews *review.Service
}

func NewReviewHandler(svc *review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: svc}
}

type submitReviewReq struct {
	BookingID string `json:"bookingId"`
	Name      string `json:"name"`
	Review    string `json:"review"`
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId is required"})
		return
	}
	err := h.reviews.Submit(c.Request.Context(), req.BookingID, middleware.CallerUID(c), req.Name, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "submitted"})
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	reviews, err := h.reviews.ListByUser(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListAll is the public testimonial wall.
func (h *ReviewHandler) ListAll(c *gin.Context) {
	reviews, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
