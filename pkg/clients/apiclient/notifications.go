package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// Notifications lists the user's notifications
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.get(ctx, "/api/notifications", nil, &notifications); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int) error {
	path := fmt.Sprintf("/api/notifications/%d/read", notificationID)
	return c.doJSON(ctx, http.MethodPut, path, nil, nil, nil)
}

// DeleteNotification dismisses a notification
func (c *Client) DeleteNotification(ctx context.Context, notificationID int) error {
	path := fmt.Sprintf("/api/notifications/%d", notificationID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

type createNotificationRequest struct {
	Message string `json:"message"`
}

// CreateNotification posts a new notification
func (c *Client) CreateNotification(ctx context.Context, message string) (*model.Notification, error) {
	var result struct {
		Success      bool               `json:"success"`
		Notification model.Notification `json:"notification"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/notifications", nil, createNotificationRequest{Message: message}, &result)
	if err != nil {
		return nil, err
	}
	return &result.Notification, nil
}
