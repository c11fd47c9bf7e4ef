package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type ConnectionController struct {
	users         store.UserStore
	requests      store.RequestStore
	notifications store.NotificationStore
}

func NewConnectionController(users store.UserStore, requests store.RequestStore, notifications store.NotificationStore) *ConnectionController {
	return &ConnectionController{users: users, requests: requests, notifications: notifications}
}

// SendRequest creates a pending connection request and notifies the
// target user.
func (cc *ConnectionController) SendRequest(c *fiber.Ctx) error {
	var body struct {
		FromUserID string `json:"fromUserId"`
		ToUserID   string `json:"toUserId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.FromUserID == "" || body.ToUserID == "" {
		return lib.BadRequest("Both user ids are required")
	}
	if body.FromUserID == body.ToUserID {
		return lib.BadRequest("You can't send a connection request to yourself")
	}

	sender, err := cc.users.GetUser(c.Context(), body.FromUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}
	if _, err := cc.users.GetUser(c.Context(), body.ToUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	for _, conn := range sender.Connections {
		if conn.UID == body.ToUserID {
			return lib.BadRequest("You are already connected with this user")
		}
	}

	pending, err := cc.requests.HasPendingBetween(c.Context(), body.FromUserID, body.ToUserID)
	if err != nil {
		return lib.Internal(err)
	}
	if pending {
		return lib.BadRequest("A connection request already exists")
	}

	req := &models.ConnectionRequest{
		FromUserID: body.FromUserID,
		ToUserID:   body.ToUserID,
		Status:     models.RequestStatusPending,
	}
	if err := cc.requests.CreateRequest(c.Context(), req); err != nil {
		return lib.Internal(err)
	}

	notifyOne(c.Context(), cc.notifications, &models.Notification{
		OwnerID:             body.ToUserID,
		Type:                models.NotificationTypeRequest,
		Message:             fmt.Sprintf("%s sent you a connection request", sender.DisplayName()),
		ConnectionRequestID: req.Id.Hex(),
	})

	return c.JSON(fiber.Map{
		"message":   "Connection request sent successfully",
		"requestId": req.Id.Hex(),
	})
}

// CancelRequest deletes a pending request the sender no longer wants,
// together with the notification that referenced it.
func (cc *ConnectionController) CancelRequest(c *fiber.Ctx) error {
	var body struct {
		RequestID string `json:"requestId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.RequestID == "" || body.UserID == "" {
		return lib.BadRequest("Request id and user id are required")
	}

	requestID, err := primitive.ObjectIDFromHex(body.RequestID)
	if err != nil {
		return lib.BadRequest("Invalid request id format")
	}

	req, err := cc.requests.GetRequest(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("Connection request not found")
		}
		return lib.Internal(err)
	}

	if req.FromUserID != body.UserID {
		return lib.Forbidden("Not authorized to cancel this request")
	}
	if req.Status != models.RequestStatusPending {
		return lib.BadRequest("This request has already been processed")
	}

	if err := cc.requests.DeleteRequest(c.Context(), requestID); err != nil {
		return lib.Internal(err)
	}
	if err := cc.notifications.DeleteByRequest(c.Context(), body.RequestID); err != nil {
		return lib.Internal(err)
	}

	return c.JSON(lib.MessageResponse("Connection request cancelled"))
}

// RespondRequest accepts or rejects a pending request. Accepting adds
// each user to the other's connections list; both outcomes clean up the
// request notification and notify the sender.
func (cc *ConnectionController) RespondRequest(c *fiber.Ctx) error {
	var body struct {
		RequestID string `json:"requestId"`
		UserID    string `json:"userId"`
		Action    string `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.RequestID == "" || body.UserID == "" || body.Action == "" {
		return lib.BadRequest("Request id, user id and action are required")
	}
	if body.Action != "accept" && body.Action != "reject" {
		return lib.BadRequest("Action must be accept or reject")
	}

	requestID, err := primitive.ObjectIDFromHex(body.RequestID)
	if err != nil {
		return lib.BadRequest("Invalid request id format")
	}

	req, err := cc.requests.GetRequest(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("Connection request not found")
		}
		return lib.Internal(err)
	}

	if req.ToUserID != body.UserID {
		return lib.Forbidden("Not authorized to respond to this request")
	}
	if req.Status != models.RequestStatusPending {
		return lib.BadRequest("This request has already been processed")
	}

	recipient, err := cc.users.GetUser(c.Context(), req.ToUserID)
	if err != nil {
		return lib.Internal(err)
	}

	if body.Action == "reject" {
		if err := cc.requests.UpdateRequestStatus(c.Context(), requestID, models.RequestStatusRejected); err != nil {
			return lib.Internal(err)
		}
		if err := cc.notifications.DeleteByRequest(c.Context(), body.RequestID); err != nil {
			return lib.Internal(err)
		}
		notifyOne(c.Context(), cc.notifications, &models.Notification{
			OwnerID:             req.FromUserID,
			Type:                models.NotificationTypeResponse,
			Message:             fmt.Sprintf("%s declined your connection request", recipient.DisplayName()),
			ConnectionRequestID: body.RequestID,
		})
		return c.JSON(lib.MessageResponse("Connection request rejected"))
	}

	sender, err := cc.users.GetUser(c.Context(), req.FromUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	if err := cc.requests.UpdateRequestStatus(c.Context(), requestID, models.RequestStatusAccepted); err != nil {
		return lib.Internal(err)
	}

	// Two independent single-document writes. The guarded update makes
	// a repeated accept a no-op rather than a duplicate entry.
	if err := cc.users.AddConnection(c.Context(), sender.UID, recipient.Summary()); err != nil {
		return lib.Internal(err)
	}
	if err := cc.users.AddConnection(c.Context(), recipient.UID, sender.Summary()); err != nil {
		return lib.Internal(err)
	}

	if err := cc.notifications.DeleteByRequest(c.Context(), body.RequestID); err != nil {
		return lib.Internal(err)
	}
	notifyOne(c.Context(), cc.notifications, &models.Notification{
		OwnerID:             req.FromUserID,
		Type:                models.NotificationTypeResponse,
		Message:             fmt.Sprintf("%s accepted your connection request", recipient.DisplayName()),
		ConnectionRequestID: body.RequestID,
	})

	return c.JSON(lib.MessageResponse("Connection request accepted"))
}
