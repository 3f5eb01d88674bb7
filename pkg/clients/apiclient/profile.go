package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// Profile fetches the signed-in user's profile. Requires a bearer token.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields. Nil/empty fields are
// left unchanged by the server.
type ProfileUpdate struct {
	Name   string   `json:"name,omitempty"`
	State  string   `json:"state,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// UpdateProfile submits profile edits for the signed-in user
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.doJSON(ctx, http.MethodPost, "/api/profile", nil, update, nil)
}
