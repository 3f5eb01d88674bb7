package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// RatingAPI defines the API operations the admin rating view needs
type RatingAPI interface {
	AttendanceRecords(ctx context.Context, adminUserID int) ([]model.AttendanceRecord, error)
	VolunteerEventTasks(ctx context.Context, volunteerID, eventID int) ([]model.Task, error)
	RateTask(ctx context.Context, taskID, percent int) (*apiclient.RateResult, error)
}

// LoadAttendance fetches the attendance records for the admin's events
func LoadAttendance(ctx context.Context, api RatingAPI, logger *zap.Logger, adminUserID int) ([]model.AttendanceRecord, error) {
	logger.Debug("Fetching attendance records", zap.Int("admin_user_id", adminUserID))
	records, err := api.AttendanceRecords(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Attendance records loaded", zap.Int("count", len(records)))
	return records, nil
}

// RatingSheet is the per-record task drilldown of the admin attendance view:
// the tasks one volunteer holds under one event, with the rating control.
type RatingSheet struct {
	api         RatingAPI
	logger      *zap.Logger
	volunteerID int
	eventID     int

	mu    sync.Mutex
	tasks []model.Task
}

// NewRatingSheet creates the drilldown for one attendance record
func NewRatingSheet(api RatingAPI, logger *zap.Logger, volunteerID, eventID int) *RatingSheet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingSheet{
		api:         api,
		logger:      logger,
		volunteerID: volunteerID,
		eventID:     eventID,
	}
}

// Load fetches the volunteer's tasks for the event
func (s *RatingSheet) Load(ctx context.Context) error {
	tasks, err := s.api.VolunteerEventTasks(ctx, s.volunteerID, s.eventID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the current task list
func (s *RatingSheet) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Rate submits a percentage rating for one of the sheet's tasks. The server
// is the sole authority for the persisted score and completion flag; on
// success the task list is refetched rather than patched locally. A task
// that is already completed cannot be re-rated.
func (s *RatingSheet) Rate(ctx context.Context, taskID, percent int) (*apiclient.RateResult, error) {
	if percent < 0 || percent > 100 {
		return nil, &apiclient.ValidationError{Field: "percent", Message: "rating must be between 0 and 100"}
	}

	s.mu.Lock()
	var task *model.Task
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			task = &s.tasks[i]
			break
		}
	}
	s.mu.Unlock()

	if task == nil {
		return nil, &apiclient.NotFoundError{Message: fmt.Sprintf("task %d is not on this sheet", taskID)}
	}
	if task.Completed {
		return nil, &apiclient.ValidationError{Message: "this task has already been rated"}
	}

	result, err := s.api.RateTask(ctx, taskID, percent)
	if err != nil {
		s.logger.Warn("Task rating failed",
			zap.Int("task_id", taskID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Task rated",
		zap.Int("task_id", taskID),
		zap.Int("percent", result.RatingPercent),
		zap.Int("actual_score", result.ActualScore))

	if ctx.Err() != nil {
		return result, ErrViewClosed
	}
	if err := s.Load(ctx); err != nil {
		return result, fmt.Errorf("rating saved but refetch failed: %w", err)
	}
	return result, nil
}
