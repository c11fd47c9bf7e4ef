package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is owned by exactly one user. Correlation ids are set
// depending on the type: connection flows carry ConnectionRequestID,
// project flows carry ProjectID, chat carries ConversationID.
type Notification struct {
	Id                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID             string             `json:"ownerId" bson:"ownerId"`
	Type                NotificationType   `json:"type" bson:"type"`
	Message             string             `json:"message" bson:"message"`
	Status              string             `json:"status" bson:"status"` // unread, read
	ConnectionRequestID string             `json:"connectionRequestId,omitempty" bson:"connectionRequestId,omitempty"`
	ProjectID           string             `json:"projectId,omitempty" bson:"projectId,omitempty"`
	ConversationID      string             `json:"conversationId,omitempty" bson:"conversationId,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
}

type NotificationType string

const (
	NotificationTypeRequest            NotificationType = "request"
	NotificationTypeResponse           NotificationType = "response"
	NotificationTypeInvitation         NotificationType = "project-invitation"
	NotificationTypeInvitationResponse NotificationType = "project-invitation-response"
	NotificationTypeComment            NotificationType = "comment"
	NotificationTypeStatusUpdate       NotificationType = "status-update"
	NotificationTypeProjectLeave       NotificationType = "project-leave"
	NotificationTypeProjectRemoval     NotificationType = "project-removal"
	NotificationTypeChat               NotificationType = "chat"
)

const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)
