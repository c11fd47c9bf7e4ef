package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamlink-app/backend/src/models"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

func (s *MongoUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Connections == nil {
		user.Connections = []models.ConnectionSummary{}
	}
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *MongoUserStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Search(ctx context.Context, query string) ([]models.User, error) {
	pattern := nameRegex(query)
	filter := bson.M{"$or": []bson.M{
		{"firstName": pattern},
		{"surname": pattern},
		{"email": query},
	}}

	opts := options.Find().SetProjection(bson.M{
		"firstName": 1,
		"surname":   1,
		"email":     1,
	})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) AddConnection(ctx context.Context, uid string, peer models.ConnectionSummary) error {
	// The filter guards against duplicates, so concurrent accepts
	// cannot append the same uid twice.
	filter := bson.M{
		"_id":             uid,
		"connections.uid": bson.M{"$ne": peer.UID},
	}
	_, err := s.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"connections": peer}})
	return err
}

func (s *MongoUserStore) RemoveConnection(ctx context.Context, uid, peerUID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$pull": bson.M{"connections": bson.M{"uid": peerUID}}},
	)
	return err
}

func nameRegex(query string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
}
