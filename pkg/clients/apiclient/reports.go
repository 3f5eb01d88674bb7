package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// Leaderboard returns the top volunteers by points earned, already ordered
// by the server
func (c *Client) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if err := c.get(ctx, "/api/leaderboard", nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return entries, nil
}

// VolunteerHistoryCSV downloads the admin's volunteer-history report as CSV
func (c *Client) VolunteerHistoryCSV(ctx context.Context, adminUserID int) ([]byte, error) {
	query := url.Values{"admin_user_id": []string{strconv.Itoa(adminUserID)}}
	data, err := c.getRaw(ctx, "/api/report/volunteer-history/csv", query)
	if err != nil {
		return nil, fmt.Errorf("failed to download report: %w", err)
	}
	return data, nil
}
