package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// ConnectionRoutes sets up the connection request lifecycle routes.
func ConnectionRoutes(app *fiber.App, cc *controllers.ConnectionController) {
	api := app.Group("/api")

	api.Post("/send-connection-request", cc.SendRequest)
	api.Post("/cancel-connection-request", cc.CancelRequest)
	api.Post("/respond-connection-request", cc.RespondRequest)
}
