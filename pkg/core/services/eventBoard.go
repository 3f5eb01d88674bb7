package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// ErrViewClosed is returned when a mutation's response arrived after the
// owning view's context was cancelled. Local state is left untouched.
var ErrViewClosed = errors.New("view closed before the response arrived")

// EventsAPI defines the API operations the event board needs
type EventsAPI interface {
	UpcomingEvents(ctx context.Context, userID int) ([]model.Event, error)
	RegisterEvent(ctx context.Context, userID, eventID int) error
	UnregisterFromEvent(ctx context.Context, userID, eventID int) error
}

// EventBoard holds the annotated event list for one view session and applies
// registration toggles to it. userID zero means an anonymous, read-only
// viewer.
type EventBoard struct {
	api    EventsAPI
	logger *zap.Logger
	userID int
	now    func() time.Time

	mu       sync.Mutex
	events   []model.Event
	inflight map[int]bool
}

// NewEventBoard creates an event board for the given viewer
func NewEventBoard(api EventsAPI, logger *zap.Logger, userID int) *EventBoard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBoard{
		api:      api,
		logger:   logger,
		userID:   userID,
		now:      time.Now,
		inflight: make(map[int]bool),
	}
}

// Load fetches the event list. The request is scoped to the viewer when a
// user id is available so the server can annotate registration and skill
// matches; otherwise the unscoped anonymous listing is used.
func (b *EventBoard) Load(ctx context.Context) error {
	b.logger.Debug("Fetching events", zap.Int("user_id", b.userID))

	events, err := b.api.UpcomingEvents(ctx, b.userID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.events = events
	b.mu.Unlock()

	b.logger.Debug("Events loaded", zap.Int("count", len(events)))
	return nil
}

// Events returns a copy of the current event list
func (b *EventBoard) Events() []model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Upcoming returns the events that have not yet taken place
func (b *EventBoard) Upcoming() []model.Event {
	return b.filter(func(ev model.Event) bool { return !b.isPast(ev) })
}

// Past returns the events whose scheduled day has passed
func (b *EventBoard) Past() []model.Event {
	return b.filter(b.isPast)
}

// SkillMatched returns the upcoming events matching the viewer's skills
func (b *EventBoard) SkillMatched() []model.Event {
	return b.filter(func(ev model.Event) bool { return ev.IsSkillMatch && !b.isPast(ev) })
}

func (b *EventBoard) filter(keep func(model.Event) bool) []model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Event
	for _, ev := range b.events {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// eventStart parses an event's scheduled time. The date field is tried
// first, then the display label. Unparseable events are treated as upcoming,
// matching how the web views behaved.
func eventStart(ev model.Event) (time.Time, bool) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"Mon, Jan 2, 2006",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}
	for _, raw := range []string{ev.Date, ev.TimeLabel} {
		if raw == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// isPast compares the event's scheduled time against today at day
// granularity
func (b *EventBoard) isPast(ev model.Event) bool {
	start, ok := eventStart(ev)
	if !ok {
		return false
	}
	now := b.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.Before(today)
}

// IsPast reports whether an event's scheduled day has already passed
func (b *EventBoard) IsPast(ev model.Event) bool {
	return b.isPast(ev)
}

// CanToggle reports whether the registration action is available for the
// event: the viewer is signed in, the event is not past, and no request for
// this event is already in flight.
func (b *EventBoard) CanToggle(eventID int) bool {
	b.mu.Lock()
	inflight := b.inflight[eventID]
	b.mu.Unlock()
	if inflight || b.userID == 0 {
		return false
	}
	ev, ok := b.find(eventID)
	if !ok {
		return false
	}
	return !b.isPast(ev)
}

func (b *EventBoard) find(eventID int) (model.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ev := range b.events {
		if ev.ID == eventID {
			return ev, true
		}
	}
	return model.Event{}, false
}

// Toggle registers or unregisters the viewer for an event, depending on its
// current is_registered flag. On success the local copy of that one event is
// updated: the flag flips and the registrant count moves by exactly one.
// Every other event is left untouched, and any failure leaves the whole list
// unchanged. A second toggle for the same event while one is in flight is
// rejected; toggles for other events stay available.
func (b *EventBoard) Toggle(ctx context.Context, eventID int) error {
	if b.userID == 0 {
		return &apiclient.ValidationError{Message: "log in to register for events"}
	}

	ev, ok := b.find(eventID)
	if !ok {
		return &apiclient.NotFoundError{Message: fmt.Sprintf("event %d is not in the current list", eventID)}
	}
	if b.isPast(ev) {
		return &apiclient.ValidationError{Message: "this event has already taken place"}
	}

	b.mu.Lock()
	if b.inflight[eventID] {
		b.mu.Unlock()
		return &apiclient.ValidationError{Message: "a registration request for this event is already in flight"}
	}
	b.inflight[eventID] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inflight, eventID)
		b.mu.Unlock()
	}()

	unregistering := ev.IsRegistered
	b.logger.Debug("Toggling registration",
		zap.Int("event_id", eventID),
		zap.Bool("unregistering", unregistering))

	var err error
	if unregistering {
		err = b.api.UnregisterFromEvent(ctx, b.userID, eventID)
	} else {
		err = b.api.RegisterEvent(ctx, b.userID, eventID)
	}
	if err != nil {
		b.logger.Warn("Registration toggle failed",
			zap.Int("event_id", eventID),
			zap.Error(err))
		return err
	}

	// the view may have gone away while the request was in flight; a late
	// success must not mutate its state
	if ctx.Err() != nil {
		return ErrViewClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.events {
		if b.events[i].ID != eventID {
			continue
		}
		if unregistering {
			b.events[i].IsRegistered = false
			b.events[i].CurrentVolunteers--
		} else {
			b.events[i].IsRegistered = true
			b.events[i].CurrentVolunteers++
		}
		break
	}

	b.logger.Info("Registration toggled",
		zap.Int("event_id", eventID),
		zap.Bool("registered", !unregistering))
	return nil
}
