package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// UpcomingEvents lists events for the volunteer view. When userID is
// non-zero the listing is scoped to that user so the server annotates each
// event with is_registered and the skill-match fields; with userID zero the
// viewer is anonymous and the annotations are absent.
func (c *Client) UpcomingEvents(ctx context.Context, userID int) ([]model.Event, error) {
	var query url.Values
	if userID != 0 {
		query = url.Values{"user_id": []string{strconv.Itoa(userID)}}
	}

	var events []model.Event
	if err := c.get(ctx, "/api/volunteer_user/events/upcoming", query, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

type registerEventRequest struct {
	UserID  int `json:"user_id"`
	EventID int `json:"event_id"`
}

// RegisterEvent registers the user for an event
func (c *Client) RegisterEvent(ctx context.Context, userID, eventID int) error {
	return c.doJSON(ctx, http.MethodPost, "/api/register-event", nil,
		registerEventRequest{UserID: userID, EventID: eventID}, nil)
}

// UnregisterFromEvent removes the user's registration for an event. The API
// has no single unregister operation, so this resolves the user's volunteer
// entry, then the match tying that volunteer to the event, then deletes the
// match. Any step failing fails the whole unit with one error.
func (c *Client) UnregisterFromEvent(ctx context.Context, userID, eventID int) error {
	volunteer, err := c.VolunteerByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve volunteer profile: %w", err)
	}

	matches, err := c.EventMatches(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event matches: %w", err)
	}

	for _, match := range matches {
		if match.VolunteerID == volunteer.ID {
			if err := c.DeleteMatch(ctx, match.ID); err != nil {
				return fmt.Errorf("failed to delete match: %w", err)
			}
			return nil
		}
	}

	return &NotFoundError{Message: "no registration found for this event"}
}
