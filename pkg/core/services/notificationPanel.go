package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// NotificationsAPI defines the API operations the notification panel needs
type NotificationsAPI interface {
	Notifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int) error
	DeleteNotification(ctx context.Context, notificationID int) error
}

// NotificationPanel holds the user's notification list. Mutations update the
// local copy only after the server confirms them.
type NotificationPanel struct {
	api    NotificationsAPI
	logger *zap.Logger

	mu            sync.Mutex
	notifications []model.Notification
}

// NewNotificationPanel creates a notification panel
func NewNotificationPanel(api NotificationsAPI, logger *zap.Logger) *NotificationPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationPanel{api: api, logger: logger}
}

// Load fetches the notification list
func (p *NotificationPanel) Load(ctx context.Context) error {
	notifications, err := p.api.Notifications(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.notifications = notifications
	p.mu.Unlock()
	return nil
}

// Notifications returns a copy of the current list
func (p *NotificationPanel) Notifications() []model.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Notification, len(p.notifications))
	copy(out, p.notifications)
	return out
}

// UnreadCount returns the number of unread notifications, for the bell badge
func (p *NotificationPanel) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, n := range p.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read
func (p *NotificationPanel) MarkRead(ctx context.Context, notificationID int) error {
	if _, ok := p.find(notificationID); !ok {
		return &apiclient.NotFoundError{Message: fmt.Sprintf("notification %d not found", notificationID)}
	}

	if err := p.api.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ErrViewClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.notifications {
		if p.notifications[i].ID == notificationID {
			p.notifications[i].Read = true
			break
		}
	}
	return nil
}

// Dismiss removes one notification
func (p *NotificationPanel) Dismiss(ctx context.Context, notificationID int) error {
	if _, ok := p.find(notificationID); !ok {
		return &apiclient.NotFoundError{Message: fmt.Sprintf("notification %d not found", notificationID)}
	}

	if err := p.api.DeleteNotification(ctx, notificationID); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ErrViewClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.notifications[:0]
	for _, n := range p.notifications {
		if n.ID != notificationID {
			kept = append(kept, n)
		}
	}
	p.notifications = kept

	p.logger.Debug("Notification dismissed", zap.Int("id", notificationID))
	return nil
}

func (p *NotificationPanel) find(notificationID int) (model.Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range p.notifications {
		if n.ID == notificationID {
			return n, true
		}
	}
	return model.Notification{}, false
}
