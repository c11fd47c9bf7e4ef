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

type MongoProjectStore struct {
	coll *mongo.Collection
}

func NewProjectStore(db *mongo.Database) *MongoProjectStore {
	return &MongoProjectStore{coll: db.Collection("projects")}
}

func (s *MongoProjectStore) CreateProject(ctx context.Context, p *models.Project) error {
	if p.Id.IsZero() {
		p.Id = primitive.NewObjectID()
	}
	if p.Tasks == nil {
		p.Tasks = []models.Task{}
	}
	if p.Team == nil {
		p.Team = []models.MemberSummary{}
	}
	if p.TeamIds == nil {
		p.TeamIds = []string{}
	}
	p.CreatedAt = time.Now()

	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *MongoProjectStore) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoProjectStore) UpdateProject(ctx context.Context, id primitive.ObjectID, update ProjectUpdate) error {
	set := bson.M{}
	if update.ProjectName != nil {
		set["projectName"] = *update.ProjectName
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Deadline != nil {
		set["deadline"] = *update.Deadline
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Tasks != nil {
		set["tasks"] = *update.Tasks
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProjectStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProjectStore) ListForUser(ctx context.Context, uid string) ([]models.Project, error) {
	filter := bson.M{"$or": []bson.M{
		{"ownerId": uid},
		{"teamIds": uid},
	}}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *MongoProjectStore) AddTeamMember(ctx context.Context, id primitive.ObjectID, member models.MemberSummary) error {
	// One update touches both lists, so team and teamIds stay in
	// lockstep and a duplicate uid can never be appended.
	filter := bson.M{
		"_id":     id,
		"teamIds": bson.M{"$ne": member.UID},
	}
	update := bson.M{"$push": bson.M{
		"team":    member,
		"teamIds": member.UID,
	}}
	_, err := s.coll.UpdateOne(ctx, filter, update)
	return err
}

func (s *MongoProjectStore) RemoveTeamMember(ctx context.Context, id primitive.ObjectID, uid string) error {
	update := bson.M{"$pull": bson.M{
		"team":    bson.M{"uid": uid},
		"teamIds": uid,
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (s *MongoProjectStore) SetTaskMilestones(ctx context.Context, id primitive.ObjectID, taskName string, milestones []models.Milestone) error {
	filter := bson.M{
		"_id":            id,
		"tasks.taskName": taskName,
	}
	update := bson.M{"$set": bson.M{"tasks.$.milestones": milestones}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
