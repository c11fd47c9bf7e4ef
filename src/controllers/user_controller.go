package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/store"
)

type UserController struct {
	users store.UserStore
}

func NewUserController(users store.UserStore) *UserController {
	return &UserController{users: users}
}

// SearchUsers matches a name substring or an exact email.
func (uc *UserController) SearchUsers(c *fiber.Ctx) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.Query == "" {
		return lib.BadRequest("Query is required")
	}

	users, err := uc.users.Search(c.Context(), lib.NormalizeEmail(body.Query))
	if err != nil {
		return lib.Internal(err)
	}

	results := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		results = append(results, fiber.Map{
			"uid":       user.UID,
			"firstName": user.FirstName,
			"surname":   user.Surname,
			"email":     user.Email,
		})
	}

	return c.JSON(fiber.Map{"results": results})
}

// UserConnections returns the user's embedded connections list.
func (uc *UserController) UserConnections(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" {
		return lib.BadRequest("User id is required")
	}

	user, err := uc.users.GetUser(c.Context(), body.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	return c.JSON(fiber.Map{"connections": user.Connections})
}

// Disconnect removes each side from the other's connections list. Two
// independent writes; absence of a prior connection is a no-op success.
func (uc *UserController) Disconnect(c *fiber.Ctx) error {
	var body struct {
		UserID           string `json:"userId"`
		DisconnectUserID string `json:"disconnectUserId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}
	if body.UserID == "" || body.DisconnectUserID == "" {
		return lib.BadRequest("Both user ids are required")
	}

	if _, err := uc.users.GetUser(c.Context(), body.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}
	if _, err := uc.users.GetUser(c.Context(), body.DisconnectUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	if err := uc.users.RemoveConnection(c.Context(), body.UserID, body.DisconnectUserID); err != nil {
		return lib.Internal(err)
	}
	if err := uc.users.RemoveConnection(c.Context(), body.DisconnectUserID, body.UserID); err != nil {
		return lib.Internal(err)
	}

	return c.JSON(lib.MessageResponse("Disconnected successfully"))
}
