package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// CommentRoutes sets up project comment routes.
func CommentRoutes(app *fiber.App, cc *controllers.CommentController) {
	api := app.Group("/api")

	api.Post("/add-comment", cc.AddComment)
	api.Post("/get-comments", cc.GetComments)
	api.Post("/delete-comment", cc.DeleteComment)
}
