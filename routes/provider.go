package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/controllers/provider"
	"github.com/localserve/localserve/middleware"
)

// SetupProviderRoutes configures the provider dashboard routes
func SetupProviderRoutes(app *fiber.App) {
	dashboard := app.Group("/provider", middleware.Protected(), middleware.RequireRole("provider"))
	dashboard.Get("/overview", provider.GetDashboardOverview)
	dashboard.Get("/earnings", provider.GetEarningsSummary)
}
