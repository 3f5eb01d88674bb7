package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// EventInput carries the fields an admin supplies when creating or editing
// an event
type EventInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Date           string   `json:"date,omitempty"`
	TimeLabel      string   `json:"time_label,omitempty"`
	Urgency        string   `json:"urgency,omitempty"`
	MaxVolunteers  int      `json:"max_volunteers,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// ManagerEvents lists events for the admin management view. Requires admin
// tier; a 403 surfaces as an AuthorizationError.
func (c *Client) ManagerEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.get(ctx, "/api/manager/events", nil, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// CreateEvent creates a new event (admin only)
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPost, "/api/manager/events", nil, input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent edits an existing event (admin only)
func (c *Client) UpdateEvent(ctx context.Context, eventID int, input EventInput) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/api/manager/events/%d", eventID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event (admin only)
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	path := fmt.Sprintf("/api/manager/events/%d", eventID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
