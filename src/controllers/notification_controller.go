package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type NotificationController struct {
	notifications store.NotificationStore
}

func NewNotificationController(notifications store.NotificationStore) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns the user's notifications newest first, optionally
// excluding one type.
func (nc *NotificationController) List(c *fiber.Ctx) error {
	var body struct {
		UserID      string `json:"userId"`
		ExcludeType string `json:"excludeType"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	notifications, err := nc.notifications.ListByOwner(c.Context(), body.UserID, body.ExcludeType)
	if err != nil {
		return lib.Internal(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// Dismiss deletes one of the user's own notifications.
func (nc *NotificationController) Dismiss(c *fiber.Ctx) error {
	var body struct {
		UserID         string `json:"userId"`
		NotificationID string `json:"notificationId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" || body.NotificationID == "" {
		return lib.BadRequest("User id and notification id are required")
	}

	notificationID, err := primitive.ObjectIDFromHex(body.NotificationID)
	if err != nil {
		return lib.BadRequest("Invalid notification id format")
	}

	if err := nc.notifications.Delete(c.Context(), body.UserID, notificationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("Notification not found")
		}
		return lib.Internal(err)
	}
	return c.JSON(lib.MessageResponse("Notification dismissed"))
}
