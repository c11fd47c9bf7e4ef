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

type MongoMessageStore struct {
	coll *mongo.Collection
}

func NewMessageStore(db *mongo.Database) *MongoMessageStore {
	return &MongoMessageStore{coll: db.Collection("messages")}
}

func (s *MongoMessageStore) InsertMessage(ctx context.Context, m *models.ChatMessage) error {
	if m.Id.IsZero() {
		m.Id = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()

	_, err := s.coll.InsertOne(ctx, m)
	return err
}

func (s *MongoMessageStore) ListByConversation(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := s.coll.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MongoMessageStore) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	// One batched update covers the whole conversation; only messages
	// sent by the other participant are touched.
	filter := bson.M{
		"conversationId": conversationID,
		"senderId":       bson.M{"$ne": readerID},
		"read":           false,
	}
	_, err := s.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}
