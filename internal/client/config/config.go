package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/filex"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// Config holds runtime settings for the idolcode client.
type Config struct {
	// BackendURL is the base URL of the external idolcode API.
	BackendURL string
	// DataDir holds the SQLite database, the log file and exported solutions.
	DataDir  string
	LogLevel string

	RequestTimeout time.Duration

	// Wake-up check: HealthRetries attempts, each bounded by HealthTimeout,
	// HealthRetryDelay apart.
	HealthTimeout    time.Duration
	HealthRetries    int
	HealthRetryDelay time.Duration

	SearchDebounce  time.Duration
	SearchMinLength int
	SearchLimit     int

	DraftFlushDelay     time.Duration
	DefaultTimerMinutes int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8000"
	c.DataDir = filex.DefaultDataDir()
	c.LogLevel = "info"
	c.RequestTimeout = 30 * time.Second
	c.HealthTimeout = 15 * time.Second
	c.HealthRetries = 5
	c.HealthRetryDelay = 5 * time.Second
	c.SearchDebounce = 300 * time.Millisecond
	c.SearchMinLength = 2
	c.SearchLimit = 5
	c.DraftFlushDelay = time.Second
	c.DefaultTimerMinutes = 30
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url %q", c.BackendURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HealthRetries < 1 {
		return fmt.Errorf("health retries must be at least 1, got %d", c.HealthRetries)
	}
	if c.SearchMinLength < 1 {
		return fmt.Errorf("search min length must be at least 1, got %d", c.SearchMinLength)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("search limit must be at least 1, got %d", c.SearchLimit)
	}
	if c.DefaultTimerMinutes < 1 {
		return fmt.Errorf("default timer must be at least 1 minute, got %d", c.DefaultTimerMinutes)
	}
	return nil
}

// DBPath is the SQLite file inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "idolcode.db")
}

// LogPath is the log file inside DataDir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "idolcode.log")
}

// Load applies defaults, then the JSON file named by -c/-config, then the
// environment (including a .env file in the working directory), then
// command-line flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
