package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// TasksAPI defines the API operations the task board needs
type TasksAPI interface {
	EventTasks(ctx context.Context, eventID int) ([]model.Task, error)
	AssignTask(ctx context.Context, taskID, volunteerID int) error
	VolunteerByUser(ctx context.Context, userID int) (*model.Volunteer, error)
}

// TaskBoard holds the task list for one event view and lets the signed-in
// volunteer claim open tasks. The volunteer id is resolved once per view
// session, on the first claim.
type TaskBoard struct {
	api     TasksAPI
	logger  *zap.Logger
	eventID int
	userID  int

	mu          sync.Mutex
	tasks       []model.Task
	volunteerID int
	inflight    map[int]bool
}

// NewTaskBoard creates a task board for one event
func NewTaskBoard(api TasksAPI, logger *zap.Logger, eventID, userID int) *TaskBoard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskBoard{
		api:      api,
		logger:   logger,
		eventID:  eventID,
		userID:   userID,
		inflight: make(map[int]bool),
	}
}

// Load fetches the event's full task list
func (b *TaskBoard) Load(ctx context.Context) error {
	tasks, err := b.api.EventTasks(ctx, b.eventID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()

	b.logger.Debug("Tasks loaded",
		zap.Int("event_id", b.eventID),
		zap.Int("count", len(tasks)))
	return nil
}

// Tasks returns a copy of the current task list
func (b *TaskBoard) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// OpenTasks returns the tasks still available to claim. The claim control is
// only ever offered for these.
func (b *TaskBoard) OpenTasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Task
	for _, t := range b.tasks {
		if !t.Assigned() {
			out = append(out, t)
		}
	}
	return out
}

// resolveVolunteer looks up the viewer's volunteer id, caching it for the
// rest of the view session
func (b *TaskBoard) resolveVolunteer(ctx context.Context) (int, error) {
	b.mu.Lock()
	cached := b.volunteerID
	b.mu.Unlock()
	if cached != 0 {
		return cached, nil
	}

	volunteer, err := b.api.VolunteerByUser(ctx, b.userID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve volunteer profile: %w", err)
	}

	b.mu.Lock()
	b.volunteerID = volunteer.ID
	b.mu.Unlock()

	b.logger.Debug("Resolved volunteer",
		zap.Int("user_id", b.userID),
		zap.Int("volunteer_id", volunteer.ID))
	return volunteer.ID, nil
}

// Claim assigns an open task to the signed-in volunteer. On success the full
// task list is refetched rather than patched locally. On failure the list
// stays as last fetched.
func (b *TaskBoard) Claim(ctx context.Context, taskID int) error {
	if b.userID == 0 {
		return &apiclient.ValidationError{Message: "log in to claim tasks"}
	}

	b.mu.Lock()
	var task *model.Task
	for i := range b.tasks {
		if b.tasks[i].ID == taskID {
			task = &b.tasks[i]
			break
		}
	}
	if task == nil {
		b.mu.Unlock()
		return &apiclient.NotFoundError{Message: fmt.Sprintf("task %d is not on this event", taskID)}
	}
	if task.Assigned() {
		b.mu.Unlock()
		return &apiclient.ValidationError{Message: "this task has already been claimed"}
	}
	if b.inflight[taskID] {
		b.mu.Unlock()
		return &apiclient.ValidationError{Message: "a claim for this task is already in flight"}
	}
	b.inflight[taskID] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inflight, taskID)
		b.mu.Unlock()
	}()

	volunteerID, err := b.resolveVolunteer(ctx)
	if err != nil {
		return err
	}

	if err := b.api.AssignTask(ctx, taskID, volunteerID); err != nil {
		b.logger.Warn("Task claim failed",
			zap.Int("task_id", taskID),
			zap.Error(err))
		return err
	}

	if ctx.Err() != nil {
		return ErrViewClosed
	}

	b.logger.Info("Task claimed",
		zap.Int("task_id", taskID),
		zap.Int("volunteer_id", volunteerID))
	return b.Load(ctx)
}

// Progress computes the viewer's progress on this event's tasks. It is zero
// until the volunteer id has been resolved by a claim.
func (b *TaskBoard) Progress() Progress {
	b.mu.Lock()
	tasks := make([]model.Task, len(b.tasks))
	copy(tasks, b.tasks)
	volunteerID := b.volunteerID
	b.mu.Unlock()

	if volunteerID == 0 {
		return Progress{PossibleScore: TaskProgress(tasks, -1).PossibleScore}
	}
	return TaskProgress(tasks, volunteerID)
}
