package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/localserve/localserve/cron"
	"github.com/localserve/localserve/db"
	"github.com/localserve/localserve/routes"
	"github.com/localserve/localserve/session"
)

func main() {
	app := fiber.New()
	db.Init()
	session.Init()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("LocalServe API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupProviderRoutes(app)

	cron.StartReminderJobs()

	log.Fatal(app.Listen(":8000"))
}
