// Package store is the document-store access layer. Interfaces are
// defined here so handlers take explicit dependencies instead of a
// package-level database value; the Mongo implementations live
// alongside, and memory provides an in-process implementation for
// tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("store: not found")

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// Search matches a case-insensitive substring of either name part
	// or the exact (normalized) email.
	Search(ctx context.Context, query string) ([]models.User, error)
	// AddConnection inserts the peer entry unless an entry with the
	// same uid is already present. Idempotent.
	AddConnection(ctx context.Context, uid string, peer models.ConnectionSummary) error
	// RemoveConnection filters the peer out of the list. Absence is
	// not an error.
	RemoveConnection(ctx context.Context, uid, peerUID string) error
}

type RequestStore interface {
	CreateRequest(ctx context.Context, req *models.ConnectionRequest) error
	GetRequest(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error)
	UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) error
	DeleteRequest(ctx context.Context, id primitive.ObjectID) error
	// HasPendingBetween reports a pending request in either direction.
	HasPendingBetween(ctx context.Context, userA, userB string) (bool, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	// ListByOwner returns the owner's notifications newest first,
	// optionally excluding one type.
	ListByOwner(ctx context.Context, ownerID, excludeType string) ([]models.Notification, error)
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
	// DeleteByRequest removes every notification referencing a
	// connection request, so resolved requests leave no actionable
	// notifications behind.
	DeleteByRequest(ctx context.Context, requestID string) error
	// DeleteInvitation removes the owner's pending invitation
	// notification(s) for a project and reports how many were removed.
	// The invitation notification is the invitation record, so a zero
	// count means the owner was never invited.
	DeleteInvitation(ctx context.Context, ownerID, projectID string) (int64, error)
	// MarkConversationRead flips the owner's unread chat notifications
	// for a conversation to read in one batched update.
	MarkConversationRead(ctx context.Context, ownerID, conversationID string) error
}

// ProjectUpdate carries the optional fields of update-project. Nil
// means "leave unchanged".
type ProjectUpdate struct {
	ProjectName *string
	Description *string
	Deadline    *string
	Status      *string
	Tasks       *[]models.Task
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, id primitive.ObjectID, update ProjectUpdate) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	// ListForUser returns projects the user owns or is a team member of.
	ListForUser(ctx context.Context, uid string) ([]models.Project, error)
	// AddTeamMember appends to team and teamIds in one update, keeping
	// the two lists in lockstep. Idempotent on the member uid.
	AddTeamMember(ctx context.Context, id primitive.ObjectID, member models.MemberSummary) error
	// RemoveTeamMember pulls from team and teamIds in one update.
	// Absence is not an error.
	RemoveTeamMember(ctx context.Context, id primitive.ObjectID, uid string) error
	// SetTaskMilestones replaces the milestones of the named task.
	// Returns ErrNotFound when the project or task is missing.
	SetTaskMilestones(ctx context.Context, id primitive.ObjectID, taskName string, milestones []models.Milestone) error
}

type CommentStore interface {
	AddComment(ctx context.Context, c *models.Comment) error
	ListByProject(ctx context.Context, projectID string) ([]models.Comment, error)
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
}

type MessageStore interface {
	InsertMessage(ctx context.Context, m *models.ChatMessage) error
	// ListByConversation returns the conversation's messages oldest first.
	ListByConversation(ctx context.Context, conversationID string) ([]models.ChatMessage, error)
	// MarkMessagesRead flips the other participant's unread messages
	// in a conversation to read in one batched update.
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}
