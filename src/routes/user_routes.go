package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// UserRoutes sets up user search and connection-list routes.
func UserRoutes(app *fiber.App, uc *controllers.UserController) {
	api := app.Group("/api")

	api.Post("/search-users", uc.SearchUsers)
	api.Post("/user-connections", uc.UserConnections)
	api.Post("/disconnect", uc.Disconnect)
}
