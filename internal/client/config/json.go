package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/flagx"
	"github.com/dmitrijs2005/idolcode/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only fields present in
// the file override the current values.
type JsonConfig struct {
	BackendURL          *string         `json:"backend_url"`
	DataDir             *string         `json:"data_dir"`
	LogLevel            *string         `json:"log_level"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	HealthTimeout       *timex.Duration `json:"health_timeout"`
	HealthRetries       *int            `json:"health_retries"`
	HealthRetryDelay    *timex.Duration `json:"health_retry_delay"`
	SearchDebounce      *timex.Duration `json:"search_debounce"`
	SearchMinLength     *int            `json:"search_min_length"`
	SearchLimit         *int            `json:"search_limit"`
	DraftFlushDelay     *timex.Duration `json:"draft_flush_delay"`
	DefaultTimerMinutes *int            `json:"default_timer_minutes"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.HealthTimeout, jc.HealthTimeout)
	setInt(&cfg.HealthRetries, jc.HealthRetries)
	setDuration(&cfg.HealthRetryDelay, jc.HealthRetryDelay)
	setDuration(&cfg.SearchDebounce, jc.SearchDebounce)
	setInt(&cfg.SearchMinLength, jc.SearchMinLength)
	setInt(&cfg.SearchLimit, jc.SearchLimit)
	setDuration(&cfg.DraftFlushDelay, jc.DraftFlushDelay)
	setInt(&cfg.DefaultTimerMinutes, jc.DefaultTimerMinutes)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
