package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/model"
)

// fakeAuthAPI records calls and returns canned results
type fakeAuthAPI struct {
	loginCalls  int
	signupCalls int
	lastEmail   string
	result      *apiclient.AuthResult
	err         error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*apiclient.AuthResult, error) {
	f.loginCalls++
	f.lastEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAuthAPI) Signup(ctx context.Context, req apiclient.SignupRequest) (*apiclient.AuthResult, error) {
	f.signupCalls++
	f.lastEmail = req.Email
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func volunteerResult() *apiclient.AuthResult {
	return &apiclient.AuthResult{
		Token: "token-123",
		User: model.User{
			ID:    7,
			Name:  "Alice Smith",
			Email: "alice@example.com",
			Role:  model.RoleVolunteer,
		},
	}
}

func newTestStore(api AuthAPI) *Store {
	s := NewStore(api, NewMemoryStorage(), "@pinepals.org", nil)
	s.Init()
	return s
}

func TestLogin_EmptyFieldsNeverHitNetwork(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)

	var vErr *apiclient.ValidationError

	err := store.Login(context.Background(), "", "secret")
	require.ErrorAs(t, err, &vErr)

	err = store.Login(context.Background(), "alice@example.com", "")
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, 0, api.loginCalls)
	assert.False(t, store.Authenticated())
}

func TestLogin_TrimsAndLowercasesEmail(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)

	err := store.Login(context.Background(), "  Alice@Example.COM  ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", api.lastEmail)
	assert.True(t, store.Authenticated())
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)
	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret"))

	api.err = &apiclient.AuthenticationError{Message: "Invalid credentials"}
	err := store.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)

	assert.True(t, store.Authenticated())
	assert.Equal(t, 7, store.CurrentUser().ID)
	assert.Equal(t, "token-123", store.Token())
}

func TestLogout_ClearsSynchronously(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)
	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret"))

	store.Logout()

	assert.False(t, store.Authenticated())
	assert.False(t, store.IsAdmin())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, store.Token())
}

func TestIsAdminImpliesAuthenticated(t *testing.T) {
	admin := &apiclient.AuthResult{
		User: model.User{ID: 1, Name: "Root", Email: "root@pinepals.org", Role: model.RoleAdmin},
	}
	api := &fakeAuthAPI{result: admin}
	store := newTestStore(api)

	// every transition: initial, logged in, logged out, disposed
	checkInvariant := func() {
		if store.IsAdmin() {
			assert.True(t, store.Authenticated(), "IsAdmin must imply Authenticated")
		}
	}

	checkInvariant()
	require.NoError(t, store.Login(context.Background(), "root@pinepals.org", "secret"))
	assert.True(t, store.IsAdmin())
	checkInvariant()
	store.Logout()
	checkInvariant()
	require.NoError(t, store.Login(context.Background(), "root@pinepals.org", "secret"))
	store.Dispose()
	checkInvariant()
	assert.False(t, store.IsAdmin())
}

func TestInit_RestoresPersistedSession(t *testing.T) {
	storage := NewMemoryStorage()
	user := model.User{ID: 7, Name: "Alice Smith", Role: model.RoleVolunteer}
	require.NoError(t, storage.Save(&PersistedSession{User: &user, Token: "opaque-token"}))

	store := NewStore(&fakeAuthAPI{}, storage, "@pinepals.org", nil)
	assert.True(t, store.Loading())
	store.Init()

	assert.False(t, store.Loading())
	assert.True(t, store.Authenticated())
	assert.Equal(t, "Alice Smith", store.CurrentUser().Name)
}

func TestInit_CorruptStorageMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	store := NewStore(&fakeAuthAPI{}, storage, "@pinepals.org", nil)
	store.Init()

	assert.False(t, store.Loading())
	assert.False(t, store.Authenticated())

	// the corrupt file was discarded, not kept around
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInit_ExpiredTokenMeansNoSession(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	tokenStr, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	storage := NewMemoryStorage()
	user := model.User{ID: 7, Name: "Alice Smith"}
	require.NoError(t, storage.Save(&PersistedSession{User: &user, Token: tokenStr}))

	store := NewStore(&fakeAuthAPI{}, storage, "@pinepals.org", nil)
	store.Init()

	assert.False(t, store.Authenticated())
}

func TestLogin_PersistsSessionForNextRun(t *testing.T) {
	storage := NewMemoryStorage()
	api := &fakeAuthAPI{result: volunteerResult()}

	first := NewStore(api, storage, "@pinepals.org", nil)
	first.Init()
	require.NoError(t, first.Login(context.Background(), "alice@example.com", "secret"))

	second := NewStore(api, storage, "@pinepals.org", nil)
	second.Init()

	assert.True(t, second.Authenticated())
	assert.Equal(t, 7, second.CurrentUser().ID)

	// legacy plain identifiers ride along with the user object
	sess, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "7", sess.UserID)
	assert.Equal(t, "Alice Smith", sess.UserName)
}

func TestSignup_LocalValidation(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)

	valid := SignupParams{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret1",
		State:    "TX",
		Skills:   []string{"Tree Planting"},
	}

	tests := []struct {
		name   string
		mutate func(*SignupParams)
	}{
		{"missing name", func(p *SignupParams) { p.Name = "" }},
		{"missing email", func(p *SignupParams) { p.Email = "" }},
		{"missing state", func(p *SignupParams) { p.State = "" }},
		{"short password", func(p *SignupParams) { p.Password = "abc" }},
		{"email without domain", func(p *SignupParams) { p.Email = "alice" }},
		{"email without tld", func(p *SignupParams) { p.Email = "alice@example" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			err := store.Signup(context.Background(), params)
			var vErr *apiclient.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	assert.Equal(t, 0, api.signupCalls, "invalid signups must not reach the network")
	assert.False(t, store.Authenticated())
}

func TestSignup_AdminTierRequiresInstitutionalDomain(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)

	params := SignupParams{
		Name:      "Root",
		Email:     "root@example.com",
		Password:  "secret1",
		State:     "TX",
		AdminTier: true,
	}

	err := store.Signup(context.Background(), params)
	var vErr *apiclient.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, api.signupCalls)

	params.Email = "root@pinepals.org"
	require.NoError(t, store.Signup(context.Background(), params))
	assert.Equal(t, 1, api.signupCalls)
}

// wiredStore builds a store over a real API client pointed at a test server,
// with the token source and expiry hook connected the way the application
// wires them
func wiredStore(t *testing.T, handler http.Handler, storage Storage) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var store *Store
	client, err := apiclient.NewClient(apiclient.Options{
		BaseURL:       server.URL,
		TokenSource:   func() string { return store.Token() },
		OnAuthExpired: func() { store.HandleAuthExpired() },
	})
	require.NoError(t, err)

	store = NewStore(client, storage, "@pinepals.org", nil)
	store.Init()
	return store
}

func seededStorage(t *testing.T) *MemoryStorage {
	t.Helper()
	storage := NewMemoryStorage()
	user := model.User{ID: 7, Name: "Alice Smith", Role: model.RoleVolunteer}
	require.NoError(t, storage.Save(&PersistedSession{User: &user, Token: "opaque-token"}))
	return storage
}

func TestLogin_RejectedCredentialsKeepExistingSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	})
	storage := seededStorage(t)
	store := wiredStore(t, handler, storage)
	require.True(t, store.Authenticated())

	err := store.Login(context.Background(), "alice@example.com", "wrong")
	var authErr *apiclient.AuthenticationError
	require.ErrorAs(t, err, &authErr)

	assert.True(t, store.Authenticated(), "the previous session survives a failed re-login")
	assert.Equal(t, "opaque-token", store.Token())

	sess, loadErr := storage.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, sess, "the durable session must not be wiped")
	assert.Equal(t, 7, sess.User.ID)
}

func TestWired401OnAuthenticatedRequestClearsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Token expired"}`))
	})
	storage := seededStorage(t)
	store := wiredStore(t, handler, storage)
	require.True(t, store.Authenticated())

	client := store.api.(*apiclient.Client)
	_, err := client.ListVolunteers(context.Background())
	require.Error(t, err)

	assert.False(t, store.Authenticated(), "a 401 on an authenticated call signs the user out")
	sess, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, sess)
}

func TestHandleAuthExpired_ClearsSession(t *testing.T) {
	api := &fakeAuthAPI{result: volunteerResult()}
	store := newTestStore(api)
	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret"))

	store.HandleAuthExpired()

	assert.False(t, store.Authenticated())
}
