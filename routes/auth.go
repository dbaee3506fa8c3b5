package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/localserve/controllers"
	"github.com/localserve/localserve/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetCurrentUser)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Post("/me/avatar", middleware.Protected(), controllers.UpdateAvatar)
}
