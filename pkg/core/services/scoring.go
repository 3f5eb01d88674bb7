package services

import (
	"math"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// ScorePreview is the would-be score shown next to the rating control before
// submission: round(maxScore * percent / 100). The server performs the same
// computation when the rating is submitted.
func ScorePreview(maxScore, percent int) int {
	return int(math.Round(float64(maxScore) * float64(percent) / 100))
}

// Progress summarises scored work for a progress indicator
type Progress struct {
	EarnedScore   int
	PossibleScore int
	Percent       float64
}

// TaskProgress computes the viewer's progress on an event: the summed scores
// of their completed tasks over the summed scores of every task on the
// event. A volunteerID of zero skips the ownership check and counts every
// completed task, whoever did it.
func TaskProgress(tasks []model.Task, volunteerID int) Progress {
	var p Progress
	for _, t := range tasks {
		p.PossibleScore += t.Score
		mine := volunteerID == 0 || (t.VolunteerID != nil && *t.VolunteerID == volunteerID)
		if mine && t.Completed {
			p.EarnedScore += t.Score
		}
	}
	if p.PossibleScore > 0 {
		p.Percent = float64(p.EarnedScore) / float64(p.PossibleScore) * 100
	}
	return p
}
