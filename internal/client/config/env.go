package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment variables understood by the client.
const (
	EnvBackendURL     = "IDOLCODE_BACKEND_URL"
	EnvDataDir        = "IDOLCODE_DATA_DIR"
	EnvLogLevel       = "IDOLCODE_LOG_LEVEL"
	EnvRequestTimeout = "IDOLCODE_REQUEST_TIMEOUT"
)

// envFile is loaded before the environment is read. Missing is fine.
var envFile = ".env"

type envConfig struct {
	BackendURL     string `env:"IDOLCODE_BACKEND_URL"`
	DataDir        string `env:"IDOLCODE_DATA_DIR"`
	LogLevel       string `env:"IDOLCODE_LOG_LEVEL"`
	RequestTimeout string `env:"IDOLCODE_REQUEST_TIMEOUT"`
}

func parseEnv(cfg *Config) error {
	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load(envFile)

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if ec.BackendURL != "" {
		cfg.BackendURL = ec.BackendURL
	}
	if ec.DataDir != "" {
		cfg.DataDir = ec.DataDir
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.RequestTimeout != "" {
		d, err := parseSecondsOrDuration(ec.RequestTimeout)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// parseSecondsOrDuration accepts "45" (seconds) or any time.ParseDuration form.
func parseSecondsOrDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
