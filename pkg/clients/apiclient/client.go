package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource returns the current bearer token, or "" when the caller is not
// signed in.
type TokenSource func() string

// Options configures a Client
type Options struct {
	BaseURL string
	// HTTPClient is optional; a client with a sane timeout is used when nil
	HTTPClient *http.Client
	// TokenSource supplies the bearer token attached to each request
	TokenSource TokenSource
	// OnAuthExpired is invoked whenever the server answers 401, so the
	// session store can clear itself before the error propagates
	OnAuthExpired func()
	Logger        *zap.Logger
}

// Client is the single HTTP client for the volunteer platform API. Every
// view-level fetch in the application goes through it.
type Client struct {
	baseURL       string
	http          *http.Client
	tokenSource   TokenSource
	onAuthExpired func()
	logger        *zap.Logger
}

// NewClient creates a new API client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		http:          httpClient,
		tokenSource:   opts.TokenSource,
		onAuthExpired: opts.OnAuthExpired,
		logger:        logger,
	}, nil
}

// errorPayload matches the error bodies the API produces. Different routes
// use different keys, so both are tried.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func serverMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// doJSON performs one request against the API and decodes the JSON response
// into out (which may be nil for calls where only the status matters).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, method, path, query, body, out, true)
}

// doPublic is doJSON for the endpoints that exist to establish a session in
// the first place. No bearer token is attached, and a 401 from them reports
// bad credentials rather than an expired session, so the OnAuthExpired hook
// must not fire.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, method, path, query, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("url", reqURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}

	c.logger.Debug("API response",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode))

	if err := c.checkStatus(resp.StatusCode, respBody, authed); err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
		}
	}

	return nil
}

// checkStatus maps non-2xx responses onto the error taxonomy. The expired-
// session hook only fires for authenticated requests; a 401 from login or
// signup means bad credentials, and the current session stays valid.
func (c *Client) checkStatus(status int, body []byte, authed bool) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := serverMessage(body)

	switch status {
	case http.StatusUnauthorized:
		if authed && c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return &AuthenticationError{Message: msg}
	case http.StatusForbidden:
		return &AuthorizationError{Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Message: msg}
	default:
		return &APIError{StatusCode: status, Message: msg}
	}
}

// get is a convenience wrapper for query-only endpoints
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// getPublic is get for the pre-login endpoints
func (c *Client) getPublic(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doPublic(ctx, http.MethodGet, path, query, nil, out)
}

// getRaw fetches a non-JSON resource (report downloads) and returns the body
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}

	if err := c.checkStatus(resp.StatusCode, respBody, true); err != nil {
		return nil, err
	}

	return respBody, nil
}
