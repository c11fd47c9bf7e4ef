package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"firstName": "Ann",
		"surname":   "Lee",
		"email":     "ann@x.com",
		"password":  "Abcdef1234!",
	}

	status, body := env.post(t, "/api/create-user", payload)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, body["userId"])

	// Same payload again must be rejected.
	status, body = env.post(t, "/api/create-user", payload)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "User already exists", body["error"])
}

func TestCreateUserMissingFields(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "/api/create-user", map[string]any{
		"firstName": "Ann",
		"email":     "ann@x.com",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, body["error"])
}

func TestCreateUserWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	for _, password := range []string{"short1!", "NoDigitsHere!", "NoSpecial123"} {
		status, _ := env.post(t, "/api/create-user", map[string]any{
			"firstName": "Ann",
			"surname":   "Lee",
			"email":     "ann@x.com",
			"password":  password,
		})
		require.Equal(t, http.StatusBadRequest, status, "password %q should be rejected", password)
	}
}

func TestLoginWithPassword(t *testing.T) {
	env := newTestEnv(t)
	uid := env.createUser(t, "Ann", "Lee", "ann@x.com")

	status, body := env.post(t, "/api/login", map[string]any{
		"email":    "ann@x.com",
		"password": "Abcdef1234!",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, uid, body["uid"])
	require.Equal(t, "Ann", body["firstName"])
	require.Equal(t, "Lee", body["surname"])
	require.NotEmpty(t, body["token"])
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ann", "Lee", "Ann@X.com")

	status, _ := env.post(t, "/api/login", map[string]any{
		"email":    "ann@x.com",
		"password": "Abcdef1234!",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestLoginWithToken(t *testing.T) {
	env := newTestEnv(t)
	uid := env.createUser(t, "Ann", "Lee", "ann@x.com")

	token, err := env.identity.IssueToken(uid)
	require.NoError(t, err)

	status, body := env.post(t, "/api/login", map[string]any{"idToken": token})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, uid, body["uid"])
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ann", "Lee", "ann@x.com")

	status, _ := env.post(t, "/api/login", map[string]any{
		"email":    "nobody@x.com",
		"password": "Abcdef1234!",
	})
	require.Equal(t, http.StatusNotFound, status)

	status, _ = env.post(t, "/api/login", map[string]any{
		"email":    "ann@x.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.post(t, "/api/login", map[string]any{"idToken": "garbage"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.post(t, "/api/login", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ann", "Lee", "ann@x.com")

	status, _ := env.post(t, "/api/change-password", map[string]any{
		"email":           "ann@x.com",
		"currentPassword": "Abcdef1234!",
		"newPassword":     "Zyxwvu9876?",
	})
	require.Equal(t, http.StatusOK, status)

	// Old password no longer works, the new one does.
	status, _ = env.post(t, "/api/login", map[string]any{
		"email":    "ann@x.com",
		"password": "Abcdef1234!",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.post(t, "/api/login", map[string]any{
		"email":    "ann@x.com",
		"password": "Zyxwvu9876?",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestChangePasswordRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ann", "Lee", "ann@x.com")

	status, _ := env.post(t, "/api/change-password", map[string]any{
		"email":           "ann@x.com",
		"currentPassword": "Abcdef1234!",
		"newPassword":     "weak",
	})
	require.Equal(t, http.StatusBadRequest, status)
}
