package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerEvents(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/manager/events", r.URL.Path)
		w.Write([]byte(`[{"id": 3, "name": "River Cleanup", "max_volunteers": 10, "current_volunteers": 4}]`))
	})
	client, _ := newTestClient(t, handler, nil)

	events, err := client.ManagerEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "River Cleanup", events[0].Name)
}

func TestUpdateEvent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/manager/events/3", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "River Cleanup (moved)", body["name"])

		w.Write([]byte(`{"id": 3, "name": "River Cleanup (moved)", "location": "North bank"}`))
	})
	client, _ := newTestClient(t, handler, nil)

	event, err := client.UpdateEvent(context.Background(), 3, EventInput{
		Name:     "River Cleanup (moved)",
		Location: "North bank",
	})
	require.NoError(t, err)
	assert.Equal(t, "River Cleanup (moved)", event.Name)
	assert.Equal(t, "North bank", event.Location)
}

func TestUpdateEvent_NotOwnedForbidden(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "Not your event"}`))
	})
	client, _ := newTestClient(t, handler, nil)

	_, err := client.UpdateEvent(context.Background(), 3, EventInput{Name: "x"})
	var authzErr *AuthorizationError
	require.ErrorAs(t, err, &authzErr)
}
