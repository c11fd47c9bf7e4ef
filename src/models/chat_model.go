package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatMessage struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID string             `json:"conversationId" bson:"conversationId"`
	SenderID       string             `json:"senderId" bson:"senderId"`
	Text           string             `json:"text" bson:"text"`
	Read           bool               `json:"read" bson:"read"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// ConversationID derives the canonical channel id for two participants.
// Both sides compute the same id regardless of argument order.
func ConversationID(a, b string) string {
	if a < b {
		return a + "-" + b
	}
	return b + "-" + a
}
