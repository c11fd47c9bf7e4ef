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

type MongoCommentStore struct {
	coll *mongo.Collection
}

func NewCommentStore(db *mongo.Database) *MongoCommentStore {
	return &MongoCommentStore{coll: db.Collection("comments")}
}

func (s *MongoCommentStore) AddComment(ctx context.Context, c *models.Comment) error {
	if c.Id.IsZero() {
		c.Id = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()

	_, err := s.coll.InsertOne(ctx, c)
	return err
}

func (s *MongoCommentStore) ListByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := s.coll.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoCommentStore) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoCommentStore) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
