package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/teamlink-app/backend/src/controllers"
	"github.com/teamlink-app/backend/src/identity"
	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/middleware"
	"github.com/teamlink-app/backend/src/routes"
	"github.com/teamlink-app/backend/src/store"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := lib.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	registry := prometheus.NewRegistry()
	metrics := lib.NewMetrics(registry)

	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}
	go lib.ServeMetrics(metricsAddr, registry)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fallback-secret-key"
	}
	provider := identity.NewMongoProvider(db, secret)

	users := store.NewUserStore(db)
	requests := store.NewRequestStore(db)
	notifications := store.NewNotificationStore(db)
	projects := store.NewProjectStore(db)
	comments := store.NewCommentStore(db)
	messages := store.NewMessageStore(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: lib.ErrorHandler,
	})
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	// 10 credential attempts per minute per client.
	limiter := middleware.NewRateLimiter(rate.Limit(10.0/60.0), 10)
	defer limiter.Stop()

	routes.AuthRoutes(app, controllers.NewAuthController(provider, users), limiter)
	routes.UserRoutes(app, controllers.NewUserController(users))
	routes.ConnectionRoutes(app, controllers.NewConnectionController(users, requests, notifications))
	routes.ProjectRoutes(app, controllers.NewProjectController(projects, users, notifications, metrics))
	routes.CommentRoutes(app, controllers.NewCommentController(comments, projects, users, notifications, metrics))
	routes.ChatRoutes(app, controllers.NewChatController(messages, users, notifications))
	routes.NotificationRoutes(app, controllers.NewNotificationController(notifications))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
