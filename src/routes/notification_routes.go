package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// NotificationRoutes sets up notification listing and dismissal.
func NotificationRoutes(app *fiber.App, nc *controllers.NotificationController) {
	api := app.Group("/api")

	api.Post("/notifications", nc.List)
	api.Post("/dismiss-notification", nc.Dismiss)
}
