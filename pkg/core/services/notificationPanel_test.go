package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

type fakeNotificationsAPI struct {
	notifications []model.Notification
	markCalls     int
	deleteCalls   int
	err           error
	cancelView    context.CancelFunc
}

func (f *fakeNotificationsAPI) Notifications(ctx context.Context) ([]model.Notification, error) {
	out := make([]model.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}

func (f *fakeNotificationsAPI) MarkNotificationRead(ctx context.Context, notificationID int) error {
	f.markCalls++
	if f.cancelView != nil {
		f.cancelView()
	}
	return f.err
}

func (f *fakeNotificationsAPI) DeleteNotification(ctx context.Context, notificationID int) error {
	f.deleteCalls++
	if f.cancelView != nil {
		f.cancelView()
	}
	return f.err
}

func panelNotifications() []model.Notification {
	return []model.Notification{
		{ID: 1, Type: "match", Message: "You were matched to River Cleanup"},
		{ID: 2, Type: "reminder", Message: "Tree Planting starts tomorrow", Read: true},
		{ID: 3, Type: "update", Message: "Winter Drive moved location"},
	}
}

func loadedPanel(t *testing.T, api *fakeNotificationsAPI) *NotificationPanel {
	t.Helper()
	panel := NewNotificationPanel(api, nil)
	require.NoError(t, panel.Load(context.Background()))
	return panel
}

func TestUnreadCount(t *testing.T) {
	panel := loadedPanel(t, &fakeNotificationsAPI{notifications: panelNotifications()})
	assert.Equal(t, 2, panel.UnreadCount())
}

func TestMarkRead(t *testing.T) {
	api := &fakeNotificationsAPI{notifications: panelNotifications()}
	panel := loadedPanel(t, api)

	require.NoError(t, panel.MarkRead(context.Background(), 1))

	assert.Equal(t, 1, api.markCalls)
	assert.Equal(t, 1, panel.UnreadCount())
	assert.True(t, panel.Notifications()[0].Read)
}

func TestMarkRead_UnknownNotification(t *testing.T) {
	api := &fakeNotificationsAPI{notifications: panelNotifications()}
	panel := loadedPanel(t, api)

	err := panel.MarkRead(context.Background(), 42)
	var nfErr *apiclient.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, 0, api.markCalls)
}

func TestDismiss(t *testing.T) {
	api := &fakeNotificationsAPI{notifications: panelNotifications()}
	panel := loadedPanel(t, api)

	require.NoError(t, panel.Dismiss(context.Background(), 2))

	assert.Equal(t, 1, api.deleteCalls)
	remaining := panel.Notifications()
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].ID)
	assert.Equal(t, 3, remaining[1].ID)
}

func TestDismiss_FailureKeepsTheList(t *testing.T) {
	api := &fakeNotificationsAPI{notifications: panelNotifications()}
	panel := loadedPanel(t, api)
	api.err = &apiclient.NetworkError{URL: "http://localhost:5000", Err: errors.New("connection refused")}

	require.Error(t, panel.Dismiss(context.Background(), 2))
	assert.Len(t, panel.Notifications(), 3)
}

func TestMarkRead_LateResponseAfterViewClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeNotificationsAPI{notifications: panelNotifications(), cancelView: cancel}
	panel := loadedPanel(t, api)

	err := panel.MarkRead(ctx, 1)
	require.ErrorIs(t, err, ErrViewClosed)
	assert.Equal(t, 2, panel.UnreadCount())
}
