package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

const deadlineLayout = "2006-01-02"

type ProjectController struct {
	projects      store.ProjectStore
	users         store.UserStore
	notifications store.NotificationStore
	metrics       *lib.Metrics
}

func NewProjectController(projects store.ProjectStore, users store.UserStore, notifications store.NotificationStore, metrics *lib.Metrics) *ProjectController {
	return &ProjectController{projects: projects, users: users, notifications: notifications, metrics: metrics}
}

// CreateProject validates the deadline before anything is written.
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	var body struct {
		ProjectName string `json:"projectName"`
		Description string `json:"description"`
		OwnerID     string `json:"ownerId"`
		Deadline    string `json:"deadline"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.ProjectName == "" || body.Description == "" || body.OwnerID == "" || body.Deadline == "" {
		return lib.BadRequest("All fields are required")
	}
	if _, err := time.Parse(deadlineLayout, body.Deadline); err != nil {
		return lib.BadRequest("Invalid deadline, expected YYYY-MM-DD")
	}

	if _, err := pc.users.GetUser(c.Context(), body.OwnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	project := &models.Project{
		ProjectName: body.ProjectName,
		Description: body.Description,
		Deadline:    body.Deadline,
		OwnerID:     body.OwnerID,
		Status:      "active",
	}
	if err := pc.projects.CreateProject(c.Context(), project); err != nil {
		return lib.Internal(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Project created successfully",
		"projectId": project.Id.Hex(),
	})
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// UpdateProject applies the provided fields. A status change fans out a
// status-update notification to the rest of the project.
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	var body struct {
		ProjectID   string         `json:"projectId"`
		UserID      string         `json:"userId"`
		ProjectName *string        `json:"projectName"`
		Description *string        `json:"description"`
		Deadline    *string        `json:"deadline"`
		Status      *string        `json:"status"`
		Tasks       *[]models.Task `json:"tasks"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}

	if body.UserID != project.OwnerID && !project.HasMember(body.UserID) {
		return lib.Forbidden("Not authorized to update this project")
	}
	if body.Deadline != nil {
		if _, err := time.Parse(deadlineLayout, *body.Deadline); err != nil {
			return lib.BadRequest("Invalid deadline, expected YYYY-MM-DD")
		}
	}

	update := store.ProjectUpdate{
		ProjectName: body.ProjectName,
		Description: body.Description,
		Deadline:    body.Deadline,
		Status:      body.Status,
		Tasks:       body.Tasks,
	}
	if err := pc.projects.UpdateProject(c.Context(), project.Id, update); err != nil {
		return lib.Internal(err)
	}

	if body.Status != nil && *body.Status != project.Status {
		name := project.ProjectName
		if body.ProjectName != nil {
			name = *body.ProjectName
		}
		message := fmt.Sprintf("Status of %s changed to %s", name, *body.Status)
		recipients := append([]string{project.OwnerID}, project.TeamIds...)
		fanOut(c.Context(), pc.notifications, pc.metrics, body.UserID, recipients, func(ownerID string) *models.Notification {
			return &models.Notification{
				OwnerID:   ownerID,
				Type:      models.NotificationTypeStatusUpdate,
				Message:   message,
				ProjectID: project.Id.Hex(),
			}
		})
	}

	return c.JSON(lib.MessageResponse("Project updated successfully"))
}

// DeleteProject is owner-only. Comments, notifications and requests
// referencing the project are deliberately left in place.
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	if project.OwnerID != body.UserID {
		return lib.Forbidden("Only the project owner can delete a project")
	}

	if err := pc.projects.DeleteProject(c.Context(), project.Id); err != nil {
		return lib.Internal(err)
	}
	return c.JSON(lib.MessageResponse("Project deleted successfully"))
}

// MyProjects lists projects the user owns or collaborates on.
func (pc *ProjectController) MyProjects(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	projects, err := pc.projects.ListForUser(c.Context(), body.UserID)
	if err != nil {
		return lib.Internal(err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// ProjectDeadlines returns the deadline summary for the same project
// set as MyProjects.
func (pc *ProjectController) ProjectDeadlines(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	projects, err := pc.projects.ListForUser(c.Context(), body.UserID)
	if err != nil {
		return lib.Internal(err)
	}

	deadlines := make([]fiber.Map, 0, len(projects))
	for _, p := range projects {
		deadlines = append(deadlines, fiber.Map{
			"projectId":   p.Id.Hex(),
			"projectName": p.ProjectName,
			"deadline":    p.Deadline,
		})
	}
	return c.JSON(fiber.Map{"deadlines": deadlines})
}

// Invite writes a project-invitation notification to the invited user.
// The notification is the invitation record.
func (pc *ProjectController) Invite(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		OwnerID   string `json:"ownerId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.OwnerID == "" || body.UserID == "" {
		return lib.BadRequest("Owner id and user id are required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	if project.OwnerID != body.OwnerID {
		return lib.Forbidden("Only the project owner can invite collaborators")
	}
	if project.HasMember(body.UserID) {
		return lib.BadRequest("User is already a collaborator on this project")
	}

	owner, err := pc.users.GetUser(c.Context(), body.OwnerID)
	if err != nil {
		return lib.Internal(err)
	}
	if _, err := pc.users.GetUser(c.Context(), body.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	notifyOne(c.Context(), pc.notifications, &models.Notification{
		OwnerID:   body.UserID,
		Type:      models.NotificationTypeInvitation,
		Message:   fmt.Sprintf("%s invited you to join %s", owner.DisplayName(), project.ProjectName),
		ProjectID: project.Id.Hex(),
	})

	return c.JSON(lib.MessageResponse("Invitation sent successfully"))
}

// RespondInvitation accepts or declines a project invitation. The
// invitation notification is the invitation record: consuming it is
// what authorizes the response, so a user who was never invited gets a
// 404 and the team is untouched. Either way the owner is told.
func (pc *ProjectController) RespondInvitation(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		UserID    string `json:"userId"`
		Action    string `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" || body.Action == "" {
		return lib.BadRequest("User id and action are required")
	}
	if body.Action != "accept" && body.Action != "decline" {
		return lib.BadRequest("Action must be accept or decline")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	user, err := pc.users.GetUser(c.Context(), body.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	deleted, err := pc.notifications.DeleteInvitation(c.Context(), body.UserID, project.Id.Hex())
	if err != nil {
		return lib.Internal(err)
	}
	if deleted == 0 {
		return lib.NotFound("Invitation not found")
	}

	if body.Action == "accept" {
		if err := pc.projects.AddTeamMember(c.Context(), project.Id, user.Member()); err != nil {
			return lib.Internal(err)
		}
	}

	verb := "accepted"
	if body.Action == "decline" {
		verb = "declined"
	}
	notifyOne(c.Context(), pc.notifications, &models.Notification{
		OwnerID:   project.OwnerID,
		Type:      models.NotificationTypeInvitationResponse,
		Message:   fmt.Sprintf("%s %s your invitation to %s", user.DisplayName(), verb, project.ProjectName),
		ProjectID: project.Id.Hex(),
	})

	return c.JSON(lib.MessageResponse("Invitation " + verb))
}

// LeaveProject removes the member from the team and notifies the owner.
func (pc *ProjectController) LeaveProject(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	if !project.HasMember(body.UserID) {
		return lib.BadRequest("User is not a collaborator on this project")
	}

	user, err := pc.users.GetUser(c.Context(), body.UserID)
	if err != nil {
		return lib.Internal(err)
	}

	if err := pc.projects.RemoveTeamMember(c.Context(), project.Id, body.UserID); err != nil {
		return lib.Internal(err)
	}

	notifyOne(c.Context(), pc.notifications, &models.Notification{
		OwnerID:   project.OwnerID,
		Type:      models.NotificationTypeProjectLeave,
		Message:   fmt.Sprintf("%s left %s", user.DisplayName(), project.ProjectName),
		ProjectID: project.Id.Hex(),
	})

	return c.JSON(lib.MessageResponse("Left project successfully"))
}

// RemoveCollaborator is owner-only and notifies the removed member.
func (pc *ProjectController) RemoveCollaborator(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"projectId"`
		OwnerID   string `json:"ownerId"`
		UserID    string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.OwnerID == "" || body.UserID == "" {
		return lib.BadRequest("Owner id and user id are required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}
	if project.OwnerID != body.OwnerID {
		return lib.Forbidden("Only the project owner can remove collaborators")
	}
	if !project.HasMember(body.UserID) {
		return lib.BadRequest("User is not a collaborator on this project")
	}

	if err := pc.projects.RemoveTeamMember(c.Context(), project.Id, body.UserID); err != nil {
		return lib.Internal(err)
	}

	notifyOne(c.Context(), pc.notifications, &models.Notification{
		OwnerID:   body.UserID,
		Type:      models.NotificationTypeProjectRemoval,
		Message:   fmt.Sprintf("You were removed from %s", project.ProjectName),
		ProjectID: project.Id.Hex(),
	})

	return c.JSON(lib.MessageResponse("Collaborator removed successfully"))
}

// UpdateTaskMilestones replaces the milestone list of one task.
func (pc *ProjectController) UpdateTaskMilestones(c *fiber.Ctx) error {
	var body struct {
		ProjectID  string              `json:"projectId"`
		TaskName   string              `json:"taskName"`
		Milestones *[]models.Milestone `json:"milestones"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.TaskName == "" || body.Milestones == nil {
		return lib.BadRequest("Task name and milestones are required")
	}

	project, err := pc.findProject(c, body.ProjectID)
	if err != nil {
		return err
	}

	err = pc.projects.SetTaskMilestones(c.Context(), project.Id, body.TaskName, *body.Milestones)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("Task not found")
		}
		return lib.Internal(err)
	}

	return c.JSON(lib.MessageResponse("Milestones updated successfully"))
}

// findProject parses the id and loads the project, translating the two
// failure modes into the client errors every project route shares.
func (pc *ProjectController) findProject(c *fiber.Ctx, projectID string) (*models.Project, error) {
	if projectID == "" {
		return nil, lib.BadRequest("Project id is required")
	}
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, lib.BadRequest("Invalid project id format")
	}

	project, err := pc.projects.GetProject(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, lib.NotFound("Project not found")
		}
		return nil, lib.Internal(err)
	}
	return project, nil
}
