// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"droptaxi/internal/http/handlers"
	"droptaxi/internal/http/middleware"
	"droptaxi/internal/infra"
	"droptaxi/internal/invoice"
	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/modules/review"
	"droptaxi/internal/modules/user"
)

type RouterDeps struct {
	Verifier infra.TokenVerifier
	Pricing  *pricing.Service
	Bookings *booking.Service
	Reviews  *review.Service
	Users    *user.Service
	Invoices *invoice.Builder
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	estimateHandler := handlers.NewEstimateHandler(deps.Pricing)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings, deps.Invoices)
	reviewHandler := handlers.NewReviewHandler(deps.Reviews)
	adminHandler := handlers.NewAdminHandler(deps.Bookings, deps.Users, deps.Reviews)

	api := r.Group("/api")
	api.POST("/estimate", estimateHandler.Estimate)
	api.GET("/vehicles", estimateHandler.Catalog)
	api.GET("/reviews", reviewHandler.ListAll)

	authed := api.Group("", middleware.Auth(deps.Verifier))
	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings", bookingHandler.ListMine)
	authed.GET("/bookings/:id/invoice", bookingHandler.Invoice)
	authed.POST("/reviews", reviewHandler.Submit)
	authed.GET("/reviews/mine", reviewHandler.ListMine)

	admin := api.Group("/admin", middleware.Auth(deps.Verifier), middleware.AdminOnly())
	admin.GET("/bookings", adminHandler.ListBookings)
	admin.PUT("/bookings/:id/charges", adminHandler.SaveCharges)
	admin.PUT("/bookings/:id/status", adminHandler.SetStatus)
	admin.POST("/bookings/:id/invoice-enable", adminHandler.EnableInvoice)
	admin.DELETE("/bookings/:id", adminHandler.DeleteBooking)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.SetUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/reviews", reviewHandler.ListAll)
	admin.DELETE("/reviews/:id", adminHandler.DeleteReview)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/stats/stream", adminHandler.StreamStats)

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return r
}
