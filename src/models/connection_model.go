package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectionRequest struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FromUserID string             `json:"fromUserId" bson:"fromUserId"`
	ToUserID   string             `json:"toUserId" bson:"toUserId"`
	Status     RequestStatus      `json:"status" bson:"status"` // pending, accepted, rejected
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)
