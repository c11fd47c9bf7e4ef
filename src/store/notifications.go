package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamlink-app/backend/src/models"
)

type MongoNotificationStore struct {
	coll *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *MongoNotificationStore {
	return &MongoNotificationStore{coll: db.Collection("notifications")}
}

func (s *MongoNotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	if n.Id.IsZero() {
		n.Id = primitive.NewObjectID()
	}
	if n.Status == "" {
		n.Status = models.NotificationStatusUnread
	}
	n.CreatedAt = time.Now()

	_, err := s.coll.InsertOne(ctx, n)
	return err
}

func (s *MongoNotificationStore) ListByOwner(ctx context.Context, ownerID, excludeType string) ([]models.Notification, error) {
	filter := bson.M{"ownerId": ownerID}
	if excludeType != "" {
		filter["type"] = bson.M{"$ne": excludeType}
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *MongoNotificationStore) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	// Owner in the filter so users can only dismiss their own items.
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoNotificationStore) DeleteByRequest(ctx context.Context, requestID string) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"connectionRequestId": requestID})
	return err
}

func (s *MongoNotificationStore) DeleteInvitation(ctx context.Context, ownerID, projectID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{
		"ownerId":   ownerID,
		"projectId": projectID,
		"type":      models.NotificationTypeInvitation,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoNotificationStore) MarkConversationRead(ctx context.Context, ownerID, conversationID string) error {
	filter := bson.M{
		"ownerId":        ownerID,
		"conversationId": conversationID,
		"status":         models.NotificationStatusUnread,
	}
	_, err := s.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.NotificationStatusRead}})
	return err
}
