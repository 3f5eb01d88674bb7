package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotification(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notifications", r.URL.Path)

		var body createNotificationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Van leaves at 9am sharp", body.Message)

		w.Write([]byte(`{"success": true, "notification": {"id": 12, "message": "Van leaves at 9am sharp", "read": false}}`))
	})
	client, _ := newTestClient(t, handler, nil)

	notification, err := client.CreateNotification(context.Background(), "Van leaves at 9am sharp")
	require.NoError(t, err)
	assert.Equal(t, 12, notification.ID)
	assert.Equal(t, "Van leaves at 9am sharp", notification.Message)
	assert.False(t, notification.Read)
}

func TestMarkNotificationRead(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/notifications/5/read", r.URL.Path)
		w.Write([]byte(`{"success": true}`))
	})
	client, _ := newTestClient(t, handler, nil)

	require.NoError(t, client.MarkNotificationRead(context.Background(), 5))
}

func TestDeleteNotification_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Notification not found"}`))
	})
	client, _ := newTestClient(t, handler, nil)

	err := client.DeleteNotification(context.Background(), 99)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
