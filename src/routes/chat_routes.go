package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// ChatRoutes sets up the pairwise chat routes.
func ChatRoutes(app *fiber.App, cc *controllers.ChatController) {
	api := app.Group("/api")

	api.Post("/send-chat-message", cc.SendMessage)
	api.Post("/get-chat-messages", cc.GetMessages)
	api.Post("/mark-messages-read", cc.MarkMessagesRead)
}
