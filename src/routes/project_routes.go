package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/controllers"
)

// ProjectRoutes sets up project CRUD, team membership and task routes.
func ProjectRoutes(app *fiber.App, pc *controllers.ProjectController) {
	api := app.Group("/api")

	api.Post("/create-project", pc.CreateProject)
	api.Post("/get-project", pc.GetProject)
	api.Post("/update-project", pc.UpdateProject)
	api.Post("/delete-project", pc.DeleteProject)
	api.Post("/my-projects", pc.MyProjects)
	api.Post("/project-deadlines", pc.ProjectDeadlines)
	api.Post("/invite-to-project", pc.Invite)
	api.Post("/respond-project-invitation", pc.RespondInvitation)
	api.Post("/leave-project", pc.LeaveProject)
	api.Post("/remove-collaborator", pc.RemoveCollaborator)
	api.Post("/update-task-milestones", pc.UpdateTaskMilestones)
}
