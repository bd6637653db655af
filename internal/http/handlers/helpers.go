// README: JSON error mapping shared by the handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/modules/review"
	"droptaxi/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, pricing.ErrInvalidVehicleType),
		errors.Is(err, pricing.ErrInvalidTripType),
		errors.Is(err, pricing.ErrNotComputable),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, review.ErrInvalidReview):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, booking.ErrDuplicateBooking),
		errors.Is(err, review.ErrDuplicateReview),
		errors.Is(err, booking.ErrCompletedLocked),
		errors.Is(err, booking.ErrUnchanged),
		errors.Is(err, booking.ErrNotCompleted):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, pricing.ErrRoutingUnavailable):
		// Retryable: the client may re-trigger on the next parameter change.
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
