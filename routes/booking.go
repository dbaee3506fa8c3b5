package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/controllers"
	"github.com/localserve/localserve/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())
	booking.Post("/", middleware.RequireRole("customer"), controllers.CreateBooking)
	booking.Get("/customer", controllers.GetCustomerBookings)
	booking.Get("/provider", middleware.RequireRole("provider"), controllers.GetProviderBookings)
	booking.Get("/:id", controllers.GetBooking)
	booking.Patch("/:id/status", controllers.UpdateBookingStatus)
	booking.Patch("/:id/payment", middleware.RequireRole("provider"), controllers.UpdateBookingPayment)
	booking.Patch("/:id/cancel", controllers.CancelBooking)
}
