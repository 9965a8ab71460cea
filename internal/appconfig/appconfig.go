// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path checked when the default file is missing.
	legacyConfigPath = "config.json"
	// DefaultAPIBaseURL is where the evaluation service mounts its REST router.
	DefaultAPIBaseURL = "http://localhost:8000/api/v1"
	// defaultRequestTimeout bounds every call made to the evaluation API.
	defaultRequestTimeout = 10 * time.Second
	// defaultPollInterval is how often the dashboard refreshes its collections.
	defaultPollInterval = 10 * time.Second
	// defaultDemoRefreshDelay is the pause between starting a demo run and re-fetching.
	defaultDemoRefreshDelay = 2 * time.Second
	// defaultRecentLimit is the number of evaluations listed on the dashboard.
	defaultRecentLimit = 5
	// defaultListenAddr is the web dashboard's bind address.
	defaultListenAddr = ":8080"
)

// Config represents the top-level application configuration.
type Config struct {
	APIBaseURL              string `json:"apiBaseURL" mapstructure:"apiBaseURL"`
	TimeoutSeconds          int    `json:"timeout,omitempty" mapstructure:"timeout"`
	PollIntervalSeconds     int    `json:"pollInterval,omitempty" mapstructure:"pollInterval"`
	DemoRefreshDelaySeconds int    `json:"demoRefreshDelay,omitempty" mapstructure:"demoRefreshDelay"`
	RecentLimit             int    `json:"recentLimit,omitempty" mapstructure:"recentLimit"`
	ListenAddr              string `json:"listenAddr,omitempty" mapstructure:"listenAddr"`
	Debug                   bool   `json:"debug" mapstructure:"debug"`
	JSONMode                bool   `json:"jsonMode" mapstructure:"jsonMode"`
	LogFile                 string `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath              string `json:"-" mapstructure:"-"`
}

// Default returns a configuration populated with every default value.
func Default() Config {
	return Config{
		APIBaseURL:              DefaultAPIBaseURL,
		TimeoutSeconds:          int(defaultRequestTimeout.Seconds()),
		PollIntervalSeconds:     int(defaultPollInterval.Seconds()),
		DemoRefreshDelaySeconds: int(defaultDemoRefreshDelay.Seconds()),
		RecentLimit:             defaultRecentLimit,
		ListenAddr:              defaultListenAddr,
	}
}

// BaseURL returns the API base URL without a trailing slash.
func (c Config) BaseURL() string {
	base := strings.TrimSpace(c.APIBaseURL)
	if base == "" {
		base = DefaultAPIBaseURL
	}
	return strings.TrimRight(base, "/")
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the dashboard refresh interval.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return defaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// DemoRefreshDelay returns how long to wait after a demo trigger before re-fetching.
func (c Config) DemoRefreshDelay() time.Duration {
	if c.DemoRefreshDelaySeconds <= 0 {
		return defaultDemoRefreshDelay
	}
	return time.Duration(c.DemoRefreshDelaySeconds) * time.Second
}

// RecentCount returns how many evaluations the dashboard lists.
func (c Config) RecentCount() int {
	if c.RecentLimit <= 0 {
		return defaultRecentLimit
	}
	return c.RecentLimit
}

// ListenAddress returns the bind address for the web dashboard.
func (c Config) ListenAddress() string {
	if addr := strings.TrimSpace(c.ListenAddr); addr != "" {
		return addr
	}
	return defaultListenAddr
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "evalboard.log"
}

// Validate reports configuration values that would make every API call fail.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL())
	if err != nil {
		return fmt.Errorf("invalid apiBaseURL %q: %w", c.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid apiBaseURL %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid apiBaseURL %q: missing host", c.APIBaseURL)
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				if err := config.Validate(); err != nil {
					return Config{}, err
				}
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath decodes the file over the defaults so omitted keys keep their default values.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Default()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
