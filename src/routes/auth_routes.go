package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
	"github.com/teamlink-app/backend/src/middleware"
)

// AuthRoutes sets up account creation, login and password change. The
// credential endpoints sit behind the rate limiter.
func AuthRoutes(app *fiber.App, ac *controllers.AuthController, limiter *middleware.RateLimiter) {
	api := app.Group("/api")

	api.Post("/create-user", limiter.Handle, ac.CreateUser)
	api.Post("/login", limiter.Handle, ac.Login)
	api.Post("/change-password", limiter.Handle, ac.ChangePassword)
}
