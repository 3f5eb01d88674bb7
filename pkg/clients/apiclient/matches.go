package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// ListVolunteers returns all volunteer profiles
func (c *Client) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	var volunteers []model.Volunteer
	if err := c.get(ctx, "/api/volunteers", nil, &volunteers); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	return volunteers, nil
}

// VolunteerByUser finds the volunteer entry owned by the given user account.
// The API only exposes the full collection, so the filtering happens here.
func (c *Client) VolunteerByUser(ctx context.Context, userID int) (*model.Volunteer, error) {
	volunteers, err := c.ListVolunteers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range volunteers {
		if volunteers[i].UserID == userID {
			return &volunteers[i], nil
		}
	}

	return nil, &NotFoundError{Message: "volunteer profile not found"}
}

// EventMatches lists the matches recorded against an event
func (c *Client) EventMatches(ctx context.Context, eventID int) ([]model.Match, error) {
	var matches []model.Match
	path := fmt.Sprintf("/api/matches/event/%d", eventID)
	if err := c.get(ctx, path, nil, &matches); err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	return matches, nil
}

// VolunteerMatches lists the matches recorded for a volunteer
func (c *Client) VolunteerMatches(ctx context.Context, volunteerID int) ([]model.Match, error) {
	var matches []model.Match
	path := fmt.Sprintf("/api/matches/volunteer/%d", volunteerID)
	if err := c.get(ctx, path, nil, &matches); err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	return matches, nil
}

// DeleteMatch removes a match record
func (c *Client) DeleteMatch(ctx context.Context, matchID int) error {
	path := fmt.Sprintf("/api/matches/%d", matchID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

type findMatchRequest struct {
	VolunteerID int `json:"volunteer_id"`
}

type findMatchResponse struct {
	Event model.Event `json:"event"`
}

// FindBestMatch asks the server for the best-scoring open event for a
// volunteer. A NotFoundError means no event matched.
func (c *Client) FindBestMatch(ctx context.Context, volunteerID int) (*model.Event, error) {
	var result findMatchResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/match/find", nil, findMatchRequest{VolunteerID: volunteerID}, &result)
	if err != nil {
		return nil, err
	}
	return &result.Event, nil
}

type createMatchRequest struct {
	VolunteerID int `json:"volunteer_id"`
	EventID     int `json:"event_id"`
}

// CreateMatch records a volunteer-event match directly (admin matching form)
func (c *Client) CreateMatch(ctx context.Context, volunteerID, eventID int) (*model.Match, error) {
	var match model.Match
	err := c.doJSON(ctx, http.MethodPost, "/api/match", nil,
		createMatchRequest{VolunteerID: volunteerID, EventID: eventID}, &match)
	if err != nil {
		return nil, err
	}
	return &match, nil
}
