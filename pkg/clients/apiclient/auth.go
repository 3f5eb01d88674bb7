package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// AuthResult is the response shape shared by login and signup
type AuthResult struct {
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	User    model.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the new-account payload for Signup
type SignupRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	State    string   `json:"state"`
	Skills   []string `json:"skills"`
}

// Login exchanges credentials for the account profile. Invalid credentials
// come back as an AuthenticationError; any session already held stays intact.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.doPublic(ctx, http.MethodPost, "/api/login", nil, loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Signup creates a new account
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.doPublic(ctx, http.MethodPost, "/api/signup", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type emailAvailability struct {
	Available bool `json:"available"`
}

// CheckEmail reports whether an email address is still free to sign up with
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	query := url.Values{"email": []string{email}}
	var result emailAvailability
	if err := c.getPublic(ctx, "/api/check-email", query, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

// ListSkills returns all known skill names, for populating signup choices
func (c *Client) ListSkills(ctx context.Context) ([]string, error) {
	var skills []string
	if err := c.getPublic(ctx, "/api/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
