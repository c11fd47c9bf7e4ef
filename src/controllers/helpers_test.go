package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/teamlink-app/backend/src/controllers"
	"github.com/teamlink-app/backend/src/identity"
	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/middleware"
	"github.com/teamlink-app/backend/src/routes"
	"github.com/teamlink-app/backend/src/store/memory"
)

// fakeIdentity implements identity.Provider in memory. Tokens are
// "token-<uid>" so VerifyToken can invert IssueToken.
type fakeIdentity struct {
	mu     sync.Mutex
	creds  map[string]string // email -> password
	uids   map[string]string // email -> uid
	emails map[string]string // uid -> email
	nextID int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		creds:  make(map[string]string),
		uids:   make(map[string]string),
		emails: make(map[string]string),
	}
}

func (f *fakeIdentity) Register(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.uids[email]; ok {
		return "", identity.ErrAlreadyExists
	}
	f.nextID++
	uid := fmt.Sprintf("user-%d", f.nextID)
	f.creds[email] = password
	f.uids[email] = uid
	f.emails[uid] = email
	return uid, nil
}

func (f *fakeIdentity) LookupByEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.uids[email]
	if !ok {
		return "", identity.ErrNotFound
	}
	return uid, nil
}

func (f *fakeIdentity) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.creds[email]
	if !ok {
		return "", identity.ErrNotFound
	}
	if stored != password {
		return "", identity.ErrInvalidCredential
	}
	return f.uids[email], nil
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(token) <= 6 || token[:6] != "token-" {
		return "", identity.ErrInvalidCredential
	}
	uid := token[6:]
	if _, ok := f.emails[uid]; !ok {
		return "", identity.ErrInvalidCredential
	}
	return uid, nil
}

func (f *fakeIdentity) IssueToken(uid string) (string, error) {
	return "token-" + uid, nil
}

func (f *fakeIdentity) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.emails[uid]
	if !ok {
		return identity.ErrNotFound
	}
	f.creds[email] = newPassword
	return nil
}

type testEnv struct {
	app      *fiber.App
	store    *memory.Store
	identity *fakeIdentity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memory.New()
	id := newFakeIdentity()

	app := fiber.New(fiber.Config{ErrorHandler: lib.ErrorHandler})

	limiter := middleware.NewRateLimiter(rate.Inf, 1)
	t.Cleanup(limiter.Stop)

	routes.AuthRoutes(app, controllers.NewAuthController(id, st), limiter)
	routes.UserRoutes(app, controllers.NewUserController(st))
	routes.ConnectionRoutes(app, controllers.NewConnectionController(st, st, st))
	routes.ProjectRoutes(app, controllers.NewProjectController(st, st, st, nil))
	routes.CommentRoutes(app, controllers.NewCommentController(st, st, st, st, nil))
	routes.ChatRoutes(app, controllers.NewChatController(st, st, st))
	routes.NotificationRoutes(app, controllers.NewNotificationController(st))

	return &testEnv{app: app, store: st, identity: id}
}

// post sends a JSON body and decodes the JSON response.
func (e *testEnv) post(t *testing.T, path string, payload any) (int, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// createUser registers a user through the API and returns the uid.
func (e *testEnv) createUser(t *testing.T, firstName, surname, email string) string {
	t.Helper()

	status, body := e.post(t, "/api/create-user", map[string]any{
		"firstName": firstName,
		"surname":   surname,
		"email":     email,
		"password":  "Abcdef1234!",
	})
	require.Equal(t, http.StatusCreated, status)

	uid, ok := body["userId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, uid)
	return uid
}

// notifications fetches the user's notifications through the API.
func (e *testEnv) notifications(t *testing.T, userID string) []map[string]any {
	t.Helper()

	status, body := e.post(t, "/api/notifications", map[string]any{"userId": userID})
	require.Equal(t, http.StatusOK, status)

	items, ok := body["notifications"].([]any)
	require.True(t, ok)

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		require.True(t, ok)
		result = append(result, entry)
	}
	return result
}

// connections fetches the user's connections list through the API.
func (e *testEnv) connections(t *testing.T, userID string) []map[string]any {
	t.Helper()

	status, body := e.post(t, "/api/user-connections", map[string]any{"userId": userID})
	require.Equal(t, http.StatusOK, status)

	items, ok := body["connections"].([]any)
	require.True(t, ok)

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		require.True(t, ok)
		result = append(result, entry)
	}
	return result
}
