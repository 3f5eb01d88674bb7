package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// MatchingAPI defines the API operations the matching screen needs
type MatchingAPI interface {
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	UpcomingEvents(ctx context.Context, userID int) ([]model.Event, error)
	FindBestMatch(ctx context.Context, volunteerID int) (*model.Event, error)
	CreateMatch(ctx context.Context, volunteerID, eventID int) (*model.Match, error)
}

// MatchingData is the jointly loaded input of the matching screen
type MatchingData struct {
	Volunteers []model.Volunteer
	Events     []model.Event
}

// LoadMatchingData fetches volunteers and events concurrently. Both must
// succeed before the screen renders; either failure fails the load.
func LoadMatchingData(ctx context.Context, api MatchingAPI, logger *zap.Logger) (*MatchingData, error) {
	var (
		wg         sync.WaitGroup
		volunteers []model.Volunteer
		events     []model.Event
		volErr     error
		evErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		volunteers, volErr = api.ListVolunteers(ctx)
	}()
	go func() {
		defer wg.Done()
		events, evErr = api.UpcomingEvents(ctx, 0)
	}()
	wg.Wait()

	if volErr != nil {
		return nil, volErr
	}
	if evErr != nil {
		return nil, evErr
	}

	logger.Debug("Matching data loaded",
		zap.Int("volunteers", len(volunteers)),
		zap.Int("events", len(events)))
	return &MatchingData{Volunteers: volunteers, Events: events}, nil
}

// SuggestMatch picks the first event whose required skills overlap the
// volunteer's, skipping full events. Skill comparison is case-insensitive.
// Returns nil when nothing matches. This mirrors the matching form's local
// auto-suggestion; FindBestMatch asks the server for its scored pick.
func SuggestMatch(volunteer model.Volunteer, events []model.Event) *model.Event {
	skills := make(map[string]bool, len(volunteer.Skills))
	for _, s := range volunteer.Skills {
		skills[strings.ToLower(s)] = true
	}

	for i := range events {
		ev := &events[i]
		if ev.MaxVolunteers > 0 && ev.CurrentVolunteers >= ev.MaxVolunteers {
			continue
		}
		for _, req := range ev.RequiredSkills {
			if skills[strings.ToLower(req)] {
				return ev
			}
		}
	}
	return nil
}

// FindAndCreateMatch asks the server for the best open event for a volunteer
// and records the match in one step
func FindAndCreateMatch(ctx context.Context, api MatchingAPI, logger *zap.Logger, volunteerID int) (*model.Match, error) {
	event, err := api.FindBestMatch(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	match, err := api.CreateMatch(ctx, volunteerID, event.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Match created",
		zap.Int("volunteer_id", volunteerID),
		zap.Int("event_id", event.ID))
	return match, nil
}
