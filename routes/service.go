package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/controllers"
	"github.com/localserve/localserve/middleware"
)

// SetupServiceRoutes configures all service listing related routes
func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/provider/:id", controllers.GetServicesByProvider)
	service.Get("/:id", controllers.GetService)
	service.Post("/", middleware.Protected(), middleware.RequireRole("provider"), controllers.CreateService)
	service.Patch("/:id", middleware.Protected(), middleware.RequireRole("provider"), controllers.UpdateService)
	service.Delete("/:id", middleware.Protected(), middleware.RequireRole("provider"), controllers.DeleteService)
	service.Post("/:id/images", middleware.Protected(), middleware.RequireRole("provider"), controllers.UploadServiceImage)
}
