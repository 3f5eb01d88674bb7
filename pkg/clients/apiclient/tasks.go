package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// EventTasks lists every task under an event
func (c *Client) EventTasks(ctx context.Context, eventID int) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/api/tasks/event/%d", eventID)
	if err := c.get(ctx, path, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

// UnassignedEventTasks lists the tasks under an event that nobody has
// claimed yet
func (c *Client) UnassignedEventTasks(ctx context.Context, eventID int) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/api/tasks/event/%d/unassigned", eventID)
	if err := c.get(ctx, path, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned tasks: %w", err)
	}
	return tasks, nil
}

type assignTaskRequest struct {
	VolunteerID int `json:"volunteer_id"`
}

// AssignTask claims a task for a volunteer. The server rejects tasks that
// are already assigned.
func (c *Client) AssignTask(ctx context.Context, taskID, volunteerID int) error {
	path := fmt.Sprintf("/api/tasks/%d/assign", taskID)
	return c.doJSON(ctx, http.MethodPost, path, nil, assignTaskRequest{VolunteerID: volunteerID}, nil)
}

type rateTaskRequest struct {
	RatingPercent int `json:"rating_percent"`
}

// RateResult is the server's account of a completed rating
type RateResult struct {
	ActualScore   int `json:"actual_score"`
	OriginalScore int `json:"original_score"`
	RatingPercent int `json:"rating_percent"`
}

// RateTask submits a percentage rating for a task. The server computes and
// persists the final score; the returned result is informational only.
func (c *Client) RateTask(ctx context.Context, taskID, percent int) (*RateResult, error) {
	var result RateResult
	path := fmt.Sprintf("/api/task/%d/rate", taskID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, rateTaskRequest{RatingPercent: percent}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VolunteerEventTasks lists the tasks a volunteer holds under one event
// (admin attendance drilldown)
func (c *Client) VolunteerEventTasks(ctx context.Context, volunteerID, eventID int) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/api/volunteer-tasks/%d/%d", volunteerID, eventID)
	if err := c.get(ctx, path, nil, &tasks); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer tasks: %w", err)
	}
	return tasks, nil
}

// AttendanceRecords lists the volunteers who attended the admin's events
func (c *Client) AttendanceRecords(ctx context.Context, adminUserID int) ([]model.AttendanceRecord, error) {
	query := url.Values{"admin_user_id": []string{strconv.Itoa(adminUserID)}}
	var records []model.AttendanceRecord
	if err := c.get(ctx, "/api/admin/volunteer-attendance", query, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}
	return records, nil
}
