package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// HistoryAPI defines the API operations the volunteer history view needs
type HistoryAPI interface {
	VolunteerByUser(ctx context.Context, userID int) (*model.Volunteer, error)
	VolunteerMatches(ctx context.Context, volunteerID int) ([]model.Match, error)
	VolunteerEventTasks(ctx context.Context, volunteerID, eventID int) ([]model.Task, error)
}

// HistoryEntry is one event in the volunteer's history, with their tasks and
// the score bar values
type HistoryEntry struct {
	Match    model.Match
	Tasks    []model.Task
	Progress Progress
}

// LoadVolunteerHistory builds the signed-in volunteer's participation
// history: each matched event with their tasks and earned score.
func LoadVolunteerHistory(ctx context.Context, api HistoryAPI, logger *zap.Logger, userID int) ([]HistoryEntry, error) {
	volunteer, err := api.VolunteerByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve volunteer profile: %w", err)
	}

	matches, err := api.VolunteerMatches(ctx, volunteer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer matches: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(matches))
	for _, match := range matches {
		tasks, err := api.VolunteerEventTasks(ctx, volunteer.ID, match.EventID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tasks for event %d: %w", match.EventID, err)
		}
		entries = append(entries, HistoryEntry{
			Match:    match,
			Tasks:    tasks,
			Progress: TaskProgress(tasks, volunteer.ID),
		})
	}

	logger.Debug("Volunteer history loaded",
		zap.Int("volunteer_id", volunteer.ID),
		zap.Int("events", len(entries)))
	return entries, nil
}
