// ABOUTME: Runtime configuration for the AmaBakery staff console
// ABOUTME: Reads environment variables with godotenv autoload and sane defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8000"

// Config aggregates runtime configuration for the console.
type Config struct {
	APIURL    string
	BranchID  int64
	ConfigDir string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	branchID, err := getEnvAsInt64("AMABAKERY_BRANCH_ID", 0)
	if err != nil {
		return nil, err
	}

	configDir := os.Getenv("AMABAKERY_CONFIG_DIR")
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	return &Config{
		APIURL:    getEnv("AMABAKERY_API_URL", defaultAPIURL),
		BranchID:  branchID,
		ConfigDir: configDir,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}, nil
}

// DefaultConfigDir returns the per-user directory for console state
// (saved session cookies, debug logs).
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "amabakery")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &InvalidValueError{Key: key, Value: v}
	}
	return n, nil
}

// InvalidValueError reports an environment variable that failed to parse.
type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid value for " + e.Key + ": " + strconv.Quote(e.Value)
}
