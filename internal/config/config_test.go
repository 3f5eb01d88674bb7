package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: http://localhost:5000
adminEmailDomain: "@pinepals.org"
requestTimeoutSeconds: 15
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "@pinepals.org", cfg.AdminEmailDomain)
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.Empty(t, cfg.SessionFile)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: [broken")
	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{APIBaseURL: "http://localhost:5000", AdminEmailDomain: "@pinepals.org"},
		},
		{
			name:    "missing base URL",
			cfg:     Config{AdminEmailDomain: "@pinepals.org"},
			wantErr: true,
		},
		{
			name:    "base URL not a URL",
			cfg:     Config{APIBaseURL: "localhost", AdminEmailDomain: "@pinepals.org"},
			wantErr: true,
		},
		{
			name:    "admin domain without leading at",
			cfg:     Config{APIBaseURL: "http://localhost:5000", AdminEmailDomain: "pinepals.org"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     Config{APIBaseURL: "http://localhost:5000", AdminEmailDomain: "@pinepals.org", RequestTimeoutSeconds: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: http://localhost:5000
adminEmailDomain: "@pinepals.org"
`)
	t.Setenv("PINEPALS_CONFIG", path)
	t.Setenv("PINEPALS_API_URL", "http://api.example.com")
	t.Setenv("PINEPALS_SESSION_FILE", "/tmp/session.json")
	t.Setenv("PINEPALS_REQUEST_TIMEOUT", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/session.json", cfg.SessionFile)
	assert.Equal(t, 45, cfg.RequestTimeoutSeconds)
}

func TestLoad_OverrideMustStillValidate(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: http://localhost:5000
adminEmailDomain: "@pinepals.org"
`)
	t.Setenv("PINEPALS_CONFIG", path)
	t.Setenv("PINEPALS_API_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}
