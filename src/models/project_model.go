package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project embeds its tasks and team. TeamIds mirrors Team's member uids
// and is kept in lockstep with it; membership queries run against
// TeamIds because the store cannot match inside nested objects.
type Project struct {
	Id          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectName string             `json:"projectName" bson:"projectName"`
	Description string             `json:"description" bson:"description"`
	Deadline    string             `json:"deadline" bson:"deadline"` // YYYY-MM-DD
	OwnerID     string             `json:"ownerId" bson:"ownerId"`
	Status      string             `json:"status" bson:"status"`
	Tasks       []Task             `json:"tasks" bson:"tasks"`
	Team        []MemberSummary    `json:"team" bson:"team"`
	TeamIds     []string           `json:"teamIds" bson:"teamIds"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

type Task struct {
	TaskName   string      `json:"taskName" bson:"taskName"`
	Milestones []Milestone `json:"milestones,omitempty" bson:"milestones,omitempty"`
}

type Milestone struct {
	Text   string `json:"text" bson:"text"`
	Status string `json:"status" bson:"status"`
}

// MemberSummary is the embedded team entry for a collaborator.
type MemberSummary struct {
	UID       string `json:"uid" bson:"uid"`
	FirstName string `json:"firstName" bson:"firstName"`
	Surname   string `json:"surname" bson:"surname"`
}

// HasMember reports whether uid is on the project team.
func (p *Project) HasMember(uid string) bool {
	for _, id := range p.TeamIds {
		if id == uid {
			return true
		}
	}
	return false
}

// Member returns the embedded team form of the user.
func (u *User) Member() MemberSummary {
	return MemberSummary{
		UID:       u.UID,
		FirstName: u.FirstName,
		Surname:   u.Surname,
	}
}
