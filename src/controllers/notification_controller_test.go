package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationsExcludeType(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", "Lee", "alice@x.com")
	bob := env.createUser(t, "Bob", "Ray", "bob@x.com")

	// One connection request and one chat message for bob.
	status, _ := env.post(t, "/api/send-connection-request", map[string]any{
		"fromUserId": alice,
		"toUserId":   bob,
	})
	require.Equal(t, http.StatusOK, status)
	env.post(t, "/api/send-chat-message", map[string]any{
		"senderId":    alice,
		"receiverId":  bob,
		"messageText": "hey",
	})

	require.Len(t, env.notifications(t, bob), 2)

	status, body := env.post(t, "/api/notifications", map[string]any{
		"userId":      bob,
		"excludeType": "chat",
	})
	require.Equal(t, http.StatusOK, status)
	notifs := body["notifications"].([]any)
	require.Len(t, notifs, 1)
	require.Equal(t, "request", notifs[0].(map[string]any)["type"])
}

func TestDismissNotification(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", "Lee", "alice@x.com")
	bob := env.createUser(t, "Bob", "Ray", "bob@x.com")

	env.post(t, "/api/send-chat-message", map[string]any{
		"senderId":    alice,
		"receiverId":  bob,
		"messageText": "hey",
	})

	notifs := env.notifications(t, bob)
	require.Len(t, notifs, 1)
	id := notifs[0]["id"].(string)

	// Only the owner can dismiss it.
	status, _ := env.post(t, "/api/dismiss-notification", map[string]any{
		"userId":         alice,
		"notificationId": id,
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Len(t, env.notifications(t, bob), 1)

	status, _ = env.post(t, "/api/dismiss-notification", map[string]any{
		"userId":         bob,
		"notificationId": id,
	})
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, env.notifications(t, bob))

	status, body := env.post(t, "/api/dismiss-notification", map[string]any{
		"userId":         bob,
		"notificationId": id,
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Notification not found", body["error"])
}

func TestDismissNotificationValidation(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "Bob", "Ray", "bob@x.com")

	status, _ := env.post(t, "/api/dismiss-notification", map[string]any{
		"userId":         bob,
		"notificationId": "not-hex",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = env.post(t, "/api/dismiss-notification", map[string]any{
		"userId":         bob,
		"notificationId": primitive.NewObjectID().Hex(),
	})
	require.Equal(t, http.StatusNotFound, status)
}
