package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

func TestScorePreview(t *testing.T) {
	tests := []struct {
		maxScore int
		percent  int
		want     int
	}{
		{30, 50, 15},
		{25, 33, 8},
		{10, 90, 9},
		{40, 100, 40},
		{40, 0, 0},
		{7, 50, 4},
		{0, 75, 0},
	}

	for _, tt := range tests {
		got := ScorePreview(tt.maxScore, tt.percent)
		assert.Equal(t, tt.want, got, "ScorePreview(%d, %d)", tt.maxScore, tt.percent)
	}
}

func intPtr(v int) *int { return &v }

func TestTaskProgress(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Score: 30, Completed: true, VolunteerID: intPtr(5)},
		{ID: 2, Score: 20, Completed: false, VolunteerID: intPtr(5)},
		{ID: 3, Score: 10, Completed: true, VolunteerID: intPtr(9)},
		{ID: 4, Score: 40, Completed: false},
	}

	p := TaskProgress(tasks, 5)
	assert.Equal(t, 30, p.EarnedScore)
	assert.Equal(t, 100, p.PossibleScore)
	assert.InDelta(t, 30.0, p.Percent, 0.001)

	// volunteer with no completed work
	p = TaskProgress(tasks, 2)
	assert.Equal(t, 0, p.EarnedScore)
	assert.Equal(t, 100, p.PossibleScore)
	assert.Zero(t, p.Percent)
}

func TestTaskProgress_ZeroVolunteerCountsAllCompleted(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Score: 30, Completed: true, VolunteerID: intPtr(5)},
		{ID: 2, Score: 10, Completed: true, VolunteerID: intPtr(9)},
		{ID: 3, Score: 60, Completed: false},
	}

	p := TaskProgress(tasks, 0)
	assert.Equal(t, 40, p.EarnedScore)
	assert.Equal(t, 100, p.PossibleScore)
	assert.InDelta(t, 40.0, p.Percent, 0.001)
}

func TestTaskProgress_EmptyList(t *testing.T) {
	p := TaskProgress(nil, 5)
	assert.Zero(t, p.EarnedScore)
	assert.Zero(t, p.PossibleScore)
	assert.Zero(t, p.Percent)
}
