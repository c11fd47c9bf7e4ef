package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type ChatController struct {
	messages      store.MessageStore
	users         store.UserStore
	notifications store.NotificationStore
}

func NewChatController(messages store.MessageStore, users store.UserStore, notifications store.NotificationStore) *ChatController {
	return &ChatController{messages: messages, users: users, notifications: notifications}
}

// SendMessage files the message under the canonical conversation id and
// notifies the receiver.
func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	var body struct {
		SenderID    string `json:"senderId"`
		ReceiverID  string `json:"receiverId"`
		MessageText string `json:"messageText"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.SenderID == "" || body.ReceiverID == "" || body.MessageText == "" {
		return lib.BadRequest("Sender id, receiver id and message text are required")
	}

	sender, err := cc.users.GetUser(c.Context(), body.SenderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}
	if _, err := cc.users.GetUser(c.Context(), body.ReceiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	conversationID := models.ConversationID(body.SenderID, body.ReceiverID)
	message := &models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       body.SenderID,
		Text:           body.MessageText,
	}
	if err := cc.messages.InsertMessage(c.Context(), message); err != nil {
		return lib.Internal(err)
	}

	notifyOne(c.Context(), cc.notifications, &models.Notification{
		OwnerID:        body.ReceiverID,
		Type:           models.NotificationTypeChat,
		Message:        fmt.Sprintf("New message from %s", sender.DisplayName()),
		ConversationID: conversationID,
	})

	return c.JSON(fiber.Map{
		"message":        "Message sent successfully",
		"conversationId": conversationID,
	})
}

// GetMessages accepts a conversation id directly or derives it from the
// two participant ids.
func (cc *ChatController) GetMessages(c *fiber.Ctx) error {
	var body struct {
		ConversationID string `json:"conversationId"`
		SenderID       string `json:"senderId"`
		ReceiverID     string `json:"receiverId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	conversationID := body.ConversationID
	if conversationID == "" {
		if body.SenderID == "" || body.ReceiverID == "" {
			return lib.BadRequest("Conversation id or both participant ids are required")
		}
		conversationID = models.ConversationID(body.SenderID, body.ReceiverID)
	}

	messages, err := cc.messages.ListByConversation(c.Context(), conversationID)
	if err != nil {
		return lib.Internal(err)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	return c.JSON(fiber.Map{
		"conversationId": conversationID,
		"messages":       messages,
	})
}

// MarkMessagesRead batches the message updates and the chat
// notification updates, one batch each.
func (cc *ChatController) MarkMessagesRead(c *fiber.Ctx) error {
	var body struct {
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.ConversationID == "" || body.UserID == "" {
		return lib.BadRequest("Conversation id and user id are required")
	}

	if err := cc.messages.MarkMessagesRead(c.Context(), body.ConversationID, body.UserID); err != nil {
		return lib.Internal(err)
	}
	if err := cc.notifications.MarkConversationRead(c.Context(), body.UserID, body.ConversationID); err != nil {
		return lib.Internal(err)
	}

	return c.JSON(lib.MessageResponse("Messages marked as read"))
}
