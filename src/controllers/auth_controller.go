package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/teamlink-app/backend/src/identity"
	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

type AuthController struct {
	identity identity.Provider
	users    store.UserStore
}

func NewAuthController(provider identity.Provider, users store.UserStore) *AuthController {
	return &AuthController{identity: provider, users: users}
}

// CreateUser registers the identity and stores the profile document
// under the new uid with an empty connections list.
func (ac *AuthController) CreateUser(c *fiber.Ctx) error {
	var body struct {
		FirstName string `json:"firstName"`
		Surname   string `json:"surname"`
		Telephone string `json:"telephone"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	if body.FirstName == "" || body.Surname == "" || body.Email == "" || body.Password == "" {
		return lib.BadRequest("All fields are required")
	}
	if !lib.ValidPassword(body.Password) {
		return lib.BadRequest("Password must be at least 8 characters and contain a digit and a special character")
	}

	email := lib.NormalizeEmail(body.Email)
	uid, err := ac.identity.Register(c.Context(), email, body.Password, body.FirstName+" "+body.Surname)
	if err != nil {
		if errors.Is(err, identity.ErrAlreadyExists) {
			return lib.BadRequest("User already exists")
		}
		return lib.Internal(err)
	}

	user := &models.User{
		UID:         uid,
		FirstName:   body.FirstName,
		Surname:     body.Surname,
		Telephone:   body.Telephone,
		Email:       email,
		Connections: []models.ConnectionSummary{},
	}
	if err := ac.users.CreateUser(c.Context(), user); err != nil {
		return lib.Internal(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully!",
		"userId":  uid,
	})
}

// Login supports both credential protocols: email+password, or a
// provider-issued idToken.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		IDToken  string `json:"idToken"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	var uid string
	var err error
	switch {
	case body.IDToken != "":
		uid, err = ac.identity.VerifyToken(c.Context(), body.IDToken)
		if err != nil {
			return lib.Unauthorized("Invalid token")
		}
	case body.Email != "" && body.Password != "":
		uid, err = ac.identity.VerifyPassword(c.Context(), lib.NormalizeEmail(body.Email), body.Password)
		if errors.Is(err, identity.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		if errors.Is(err, identity.ErrInvalidCredential) {
			return lib.Unauthorized("Invalid credentials")
		}
		if err != nil {
			return lib.Internal(err)
		}
	default:
		return lib.BadRequest("Email and password or idToken are required")
	}

	user, err := ac.users.GetUser(c.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return lib.NotFound("User not found")
		}
		return lib.Internal(err)
	}

	token, err := ac.identity.IssueToken(uid)
	if err != nil {
		return lib.Internal(err)
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"uid":       uid,
		"firstName": user.FirstName,
		"surname":   user.Surname,
	})
}

// ChangePassword verifies the current password before applying the new
// one. The new password goes through the same strength rule as signup.
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	var body struct {
		Email           string `json:"email"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&body); err != nil {
		return lib.BadRequest("Invalid JSON body")
	}

	if body.Email == "" || body.CurrentPassword == "" || body.NewPassword == "" {
		return lib.BadRequest("All fields are required")
	}
	if !lib.ValidPassword(body.NewPassword) {
		return lib.BadRequest("Password must be at least 8 characters and contain a digit and a special character")
	}

	uid, err := ac.identity.VerifyPassword(c.Context(), lib.NormalizeEmail(body.Email), body.CurrentPassword)
	if errors.Is(err, identity.ErrNotFound) {
		return lib.NotFound("User not found")
	}
	if errors.Is(err, identity.ErrInvalidCredential) {
		return lib.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return lib.Internal(err)
	}

	if err := ac.identity.UpdatePassword(c.Context(), uid, body.NewPassword); err != nil {
		return lib.Internal(err)
	}

	return c.JSON(lib.MessageResponse("Password updated successfully"))
}
