// README: Customer booking handlers: create, list own, download invoice.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/http/middleware"
	"droptaxi/internal/invoice"
	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
)

type BookingHandler struct {
	bookings *booking.Service
	invoices *invoice.Builder
}

func NewBookingHandler(svc *booking.Service, invoices *invoice.Builder) *BookingHandler {
	return &BookingHandler{bookings: svc, invoices: invoices}
}

type createBookingReq struct {
	TripType    pricing.TripType `json:"tripType"`
	Date        string           `json:"date"`
	ReturnDate  string           `json:"returnDate"`
	Source      booking.Place    `json:"source"`
	Destination booking.Place    `json:"destination"`
	VehicleType string           `json:"vehicleType"`
	Distance    float64          `json:"distance"`
	Duration    int64            `json:"duration"`
	Cost        int64            `json:"cost"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone"`
	UserEmail   string           `json:"userEmail"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	bookingID, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		TripType:    req.TripType,
		Date:        req.Date,
		ReturnDate:  req.ReturnDate,
		Source:      req.Source,
		Destination: req.Destination,
		VehicleType: req.VehicleType,
		Distance:    req.Distance,
		Duration:    req.Duration,
		Cost:        req.Cost,
		Name:        req.Name,
		Phone:       req.Phone,
		UserID:      middleware.CallerUID(c),
		UserEmail:   req.UserEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookingId": bookingID, "status": booking.StatusPending})
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookings.ListByUser(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Invoice serves the PDF invoice for one of the caller's bookings. Customers
// can only download once an administrator has enabled the invoice; admins
// may download at any time.
func (h *BookingHandler) Invoice(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	isAdmin := middleware.CallerRole(c) == "admin"
	if !isAdmin && b.UserID != middleware.CallerUID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": booking.ErrNotFound.Error()})
		return
	}
	if !isAdmin && !b.InvoiceEnabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "invoice is not available for this booking"})
		return
	}
	pdf, err := h.invoices.Build(b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", b.BookingID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
