package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionRequestLifecycle(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	status, body := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	require.Equal(t, http.StatusOK, status)
	requestID, ok := body["requestId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, requestID)

	// The recipient has exactly one unread request notification
	// referencing the request.
	notifs := env.notifications(t, u2)
	require.Len(t, notifs, 1)
	require.Equal(t, "request", notifs[0]["type"])
	require.Equal(t, "unread", notifs[0]["status"])
	require.Equal(t, requestID, notifs[0]["connectionRequestId"])

	status, _ = env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u2,
		"action":    "accept",
	})
	require.Equal(t, http.StatusOK, status)

	// Symmetry after acceptance.
	conns1 := env.connections(t, u1)
	require.Len(t, conns1, 1)
	require.Equal(t, u2, conns1[0]["uid"])

	conns2 := env.connections(t, u2)
	require.Len(t, conns2, 1)
	require.Equal(t, u1, conns2[0]["uid"])

	// The request notification is cleaned up; the sender got a
	// response notification.
	require.Empty(t, env.notifications(t, u2))

	senderNotifs := env.notifications(t, u1)
	require.Len(t, senderNotifs, 1)
	require.Equal(t, "response", senderNotifs[0]["type"])
}

func TestSendConnectionRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	status, _ := env.post(t, "/api/send-connection-request", map[string]any{"fromUserId": u1})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u1,
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   "missing-user",
	})
	require.Equal(t, http.StatusNotFound, status)

	// A second request while one is pending is rejected, in either
	// direction.
	status, _ = env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u2,
		"toUserId":   u1,
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRespondConnectionRequestAuthorization(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	_, body := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	requestID := body["requestId"].(string)

	// Only the recipient may respond.
	status, _ := env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u1,
		"action":    "accept",
	})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u2,
		"action":    "accept",
	})
	require.Equal(t, http.StatusOK, status)

	// A resolved request cannot be processed again.
	status, _ = env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u2,
		"action":    "accept",
	})
	require.Equal(t, http.StatusBadRequest, status)

	// And no duplicate entries were appended either way.
	require.Len(t, env.connections(t, u1), 1)
	require.Len(t, env.connections(t, u2), 1)
}

func TestRejectConnectionRequest(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	_, body := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	requestID := body["requestId"].(string)

	status, _ := env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u2,
		"action":    "reject",
	})
	require.Equal(t, http.StatusOK, status)

	require.Empty(t, env.connections(t, u1))
	require.Empty(t, env.connections(t, u2))

	senderNotifs := env.notifications(t, u1)
	require.Len(t, senderNotifs, 1)
	require.Equal(t, "response", senderNotifs[0]["type"])
}

func TestCancelConnectionRequest(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	_, body := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	requestID := body["requestId"].(string)

	// Only the sender may cancel.
	status, _ := env.post(t, "/api/cancel-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u2,
	})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = env.post(t, "/api/cancel-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u1,
	})
	require.Equal(t, http.StatusOK, status)

	// The recipient's request notification is gone with it.
	require.Empty(t, env.notifications(t, u2))

	status, _ = env.post(t, "/api/cancel-connection-request", map[string]any{
		"requestId": requestID,
		"userId":    u1,
	})
	require.Equal(t, http.StatusNotFound, status)
}

func TestDisconnect(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	_, body := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": u1,
		"toUserId":   u2,
	})
	env.post(t, "/api/respond-connection-request", map[string]any{
		"requestId": body["requestId"].(string),
		"userId":    u2,
		"action":    "accept",
	})

	status, _ := env.post(t, "/api/disconnect", map[string]any{
		"userId":           u1,
		"disconnectUserId": u2,
	})
	require.Equal(t, http.StatusOK, status)

	require.Empty(t, env.connections(t, u1))
	require.Empty(t, env.connections(t, u2))
}

func TestDisconnectWithoutPriorConnection(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "Ann", "Lee", "ann@x.com")
	u2 := env.createUser(t, "Bob", "Ray", "bob@x.com")

	// Absence is not an error.
	status, _ := env.post(t, "/api/disconnect", map[string]any{
		"userId":           u1,
		"disconnectUserId": u2,
	})
	require.Equal(t, http.StatusOK, status)

	require.Empty(t, env.connections(t, u1))
	require.Empty(t, env.connections(t, u2))

	// A missing side is.
	status, _ = env.post(t, "/api/disconnect", map[string]any{
		"userId":           u1,
		"disconnectUserId": "missing-user",
	})
	require.Equal(t, http.StatusNotFound, status)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ann", "Lee", "ann@x.com")
	env.createUser(t, "Annabel", "Smith", "annabel@x.com")
	env.createUser(t, "Bob", "Ray", "bob@x.com")

	status, body := env.post(t, "/api/search-users", map[string]any{"query": "ann"})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["results"], 2)

	status, body = env.post(t, "/api/search-users", map[string]any{"query": "bob@x.com"})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["results"], 1)

	status, _ = env.post(t, "/api/search-users", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
}
