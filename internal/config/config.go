package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "pine_pals_config.yaml"

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the volunteer platform API root, e.g. http://localhost:5000
	APIBaseURL string `yaml:"apiBaseURL" validate:"required,url"`
	// AdminEmailDomain is the institutional suffix required for admin signup
	AdminEmailDomain string `yaml:"adminEmailDomain" validate:"required,startswith=@"`
	// SessionFile overrides where the session is persisted; empty uses the
	// default under the user config directory
	SessionFile string `yaml:"sessionFile,omitempty"`
	// RequestTimeoutSeconds bounds each API call; 0 uses the client default
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds,omitempty" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load finds, parses and validates the configuration. A .env file in the
// working directory is honored first, and PINEPALS_API_URL /
// PINEPALS_CONFIG override the file-based values.
func Load() (*Config, error) {
	// missing .env is fine; it only exists in dev setups
	_ = godotenv.Load()

	configPath := os.Getenv("PINEPALS_CONFIG")
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		configPath = found
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads the configuration from a specific path without applying
// environment overrides
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PINEPALS_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("PINEPALS_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("PINEPALS_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutSeconds = secs
		}
	}
}

// findConfigFile searches for the config file in the current directory and
// then the user's home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
