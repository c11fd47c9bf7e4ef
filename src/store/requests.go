package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamlink-app/backend/src/models"
)

type MongoRequestStore struct {
	coll *mongo.Collection
}

func NewRequestStore(db *mongo.Database) *MongoRequestStore {
	return &MongoRequestStore{coll: db.Collection("connection_requests")}
}

func (s *MongoRequestStore) CreateRequest(ctx context.Context, req *models.ConnectionRequest) error {
	if req.Id.IsZero() {
		req.Id = primitive.NewObjectID()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, req)
	return err
}

func (s *MongoRequestStore) GetRequest(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *MongoRequestStore) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRequestStore) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRequestStore) HasPendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": userA, "toUserId": userB},
			{"fromUserId": userB, "toUserId": userA},
		},
		"status": models.RequestStatusPending,
	}
	err := s.coll.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
