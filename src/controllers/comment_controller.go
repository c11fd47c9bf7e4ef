package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type CommentController struct {
	comments      store.CommentStore
	projects      store.ProjectStore
	users         store.UserStore
	notifications store.NotificationStore
	metrics       *lib.Metrics
}

func NewCommentController(comments store.CommentStore, projects store.ProjectStore, users store.UserStore, notifications store.NotificationStore, metrics *lib.Metrics) *CommentController {
	return &CommentController{comments: comments, projects: projects, users: users, notifications: notifications, metrics: metrics}
}

// AddComment stores the comment with the author's name denormalized and
// fans a comment notification out to the owner and team, minus the
// author.
func (cc *CommentController) AddComment(c *fiber.Ctx) error {
	var body struct {
		ProjectID   string `json:"projectId"`
		UserID      string `json:"userId"`
		CommentText string `json:"commentText"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.ProjectID == "" || body.UserID == "" || body.CommentText == "" {
		return lib.BadRequest("All fields are required")
	}

	project, err := cc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	author, err := cc.users.GetUser(c.Context(), body.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	comment := &models.Comment{
		ProjectID: project.Id.Hex(),
		UserID:    author.UID,
		UserName:  author.DisplayName(),
		Text:      body.CommentText,
	}
	if err := cc.comments.AddComment(c.Context(), comment); err != nil {
		return lib.Internal(err)
	}

	message := fmt.Sprintf("%s commented on %s", author.DisplayName(), project.ProjectName)
	recipients := append([]string{project.OwnerID}, project.TeamIds...)
	fanOut(c.Context(), cc.notifications, cc.metrics, author.UID, recipients, func(ownerID string) *models.Notification {
		return &models.Notification{
			OwnerID:   ownerID,
			Type:      models.NotificationTypeComment,
			Message:   message,
			ProjectID: project.Id.Hex(),
		}
	})

	return c.JSON(fiber.Map{
		"message":   "Comment added successfully",
		"commentId": comment.Id.Hex(),
	})
}

func (cc *CommentController) GetComments(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	project, err := cc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}

	comments, err := cc.comments.ListByProject(c.Context(), project.Id.Hex())
	if err != nil {
		return lib.Internal(err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// DeleteComment only allows the comment's author to remove it.
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		CommentID string `json:"commentId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.ProjectID == "" || body.CommentID == "" || body.UserID == "" {
		return lib.BadRequest("All fields are required")
	}

	commentID, err := primitive.ObjectIDFromHex(body.CommentID)
	if err != nil {
		return lib.BadRequest("Invalid comment id format")
	}

	comment, err := cc.comments.GetComment(c.Context(), commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("Comment not found")
		}
		return lib.Internal(err)
	}
	if comment.UserID != body.UserID {
		return lib.Forbidden("Not authorized to delete this comment")
	}

	if err := cc.comments.DeleteComment(c.Context(), commentID); err != nil {
		return lib.Internal(err)
	}
	return c.JSON(lib.MessageResponse("Comment deleted successfully"))
}

func (cc *CommentController) findProject(c *fiber.Ctx, projectID string) (*models.Project, error) {
	if projectID == "" {
		return nil, lib.BadRequest("Project id is required")
	}
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, lib.BadRequest("Invalid project id format")
	}

	project, err := cc.projects.GetProject(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, lib.NotFound("Project not found")
		}
		return nil, lib.Internal(err)
	}
	return project, nil
}
