package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// Same local@domain.tld shape the signup form enforces
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validate = validator.New()

// AuthAPI is the slice of the API client the session store needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*apiclient.AuthResult, error)
	Signup(ctx context.Context, req apiclient.SignupRequest) (*apiclient.AuthResult, error)
}

// SignupParams carries the signup form fields. AdminTier signup requires the
// configured institutional email domain.
type SignupParams struct {
	Name      string   `validate:"required"`
	Email     string   `validate:"required"`
	Password  string   `validate:"required,min=6"`
	State     string   `validate:"required"`
	Skills    []string `validate:"omitempty,dive,required"`
	AdminTier bool
}

// Store is the single source of truth for who is using the application.
// It is constructed explicitly and passed to consumers; nothing reads it
// through package-level state. Lifecycle: NewStore -> Init ->
// authenticated/unauthenticated -> Dispose.
type Store struct {
	api         AuthAPI
	storage     Storage
	logger      *zap.Logger
	adminDomain string

	mu       sync.RWMutex
	user     *model.User
	token    string
	loading  bool
	disposed bool
}

// NewStore creates a session store. adminDomain is the institutional email
// suffix required for admin-tier signup (e.g. "@pinepals.org").
func NewStore(api AuthAPI, storage Storage, adminDomain string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:         api,
		storage:     storage,
		logger:      logger,
		adminDomain: adminDomain,
		loading:     true,
	}
}

// Init restores the session from durable storage. A corrupt stored value or
// an expired token is treated as "no session", never as an error. Init makes
// no network calls.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.loading = false }()

	sess, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("Discarding unreadable stored session", zap.Error(err))
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn("Failed to clear stored session", zap.Error(clearErr))
		}
		return
	}
	if sess == nil {
		s.logger.Debug("No stored session found")
		return
	}

	if sess.Token != "" && tokenExpired(sess.Token) {
		s.logger.Info("Stored session token has expired, signing out")
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn("Failed to clear stored session", zap.Error(clearErr))
		}
		return
	}

	s.user = sess.User
	s.token = sess.Token
	s.logger.Info("Restored session",
		zap.Int("user_id", sess.User.ID),
		zap.String("role", string(sess.User.Role)))
}

// tokenExpired inspects the unverified exp claim of a stored JWT. Opaque or
// claim-less tokens are kept; only a definite past expiry clears the session.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login authenticates against the backend. The email is trimmed and
// lower-cased before sending. Empty fields fail locally with a
// ValidationError and no network call. On failure the current session is
// left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return &apiclient.ValidationError{Field: "email", Message: "email is required"}
	}
	if password == "" {
		return &apiclient.ValidationError{Field: "password", Message: "password is required"}
	}

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.replace(result)
	s.logger.Info("Logged in", zap.Int("user_id", result.User.ID))
	return nil
}

// Signup creates a new account and signs it in. All validation runs locally
// before any network call.
func (s *Store) Signup(ctx context.Context, params SignupParams) error {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	if err := validate.Struct(params); err != nil {
		return signupValidationError(err)
	}
	if !emailPattern.MatchString(params.Email) {
		return &apiclient.ValidationError{Field: "email", Message: "invalid email format"}
	}
	if params.AdminTier && !strings.HasSuffix(params.Email, s.adminDomain) {
		return &apiclient.ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("admin accounts require a %s email address", s.adminDomain),
		}
	}

	result, err := s.api.Signup(ctx, apiclient.SignupRequest{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
		State:    params.State,
		Skills:   params.Skills,
	})
	if err != nil {
		return err
	}

	s.replace(result)
	s.logger.Info("Signed up", zap.Int("user_id", result.User.ID))
	return nil
}

// signupValidationError converts the first validator failure into the local
// error taxonomy
func signupValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &apiclient.ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &apiclient.ValidationError{Field: field, Message: field + " is required"}
	case "min":
		if field == "password" {
			return &apiclient.ValidationError{Field: field, Message: "password must be at least 6 characters long"}
		}
		return &apiclient.ValidationError{Field: field, Message: field + " is too short"}
	default:
		return &apiclient.ValidationError{Field: field, Message: field + " is invalid"}
	}
}

// replace swaps in a new session wholesale and persists it
func (s *Store) replace(result *apiclient.AuthResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := result.User
	s.user = &user
	s.token = result.Token

	sess := &PersistedSession{
		Token:    result.Token,
		User:     &user,
		UserID:   strconv.Itoa(user.ID),
		UserName: user.Name,
	}
	if err := s.storage.Save(sess); err != nil {
		// the in-memory session stays valid; only persistence failed
		s.logger.Warn("Failed to persist session", zap.Error(err))
	}
}

// Logout clears the session synchronously. It never fails; a storage error
// is logged and otherwise ignored.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("Failed to clear stored session", zap.Error(err))
	}
	s.logger.Info("Logged out")
}

// HandleAuthExpired clears the session in response to a 401 from the API.
// Wire it to the API client's OnAuthExpired hook.
func (s *Store) HandleAuthExpired() {
	s.logger.Info("Session rejected by server, signing out")
	s.Logout()
}

// Dispose ends the store's lifecycle. Further derived queries report an
// unauthenticated session.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.user = nil
	s.token = ""
}

// Loading reports whether the initial storage read is still pending
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Authenticated reports whether a user is signed in
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.disposed && s.user != nil
}

// IsAdmin reports whether the signed-in user has the admin tier. It implies
// Authenticated.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.disposed && s.user != nil && s.user.Role == model.RoleAdmin
}

// CurrentUser returns a copy of the signed-in user, or nil
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.disposed || s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token, for use as the API client's
// TokenSource
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.disposed {
		return ""
	}
	return s.token
}
