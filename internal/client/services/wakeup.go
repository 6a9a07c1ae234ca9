package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/logging"
	"github.com/sethvargo/go-retry"
)

// HealthChecker is the part of the backend used to wake it up.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// WakeState is reported to the progress callback.
type WakeState int

const (
	// WakeAttempt: attempt Attempt of Max is about to run.
	WakeAttempt WakeState = iota
	WakeReady
	WakeExhausted
)

// WakeEvent describes one step of the wake-up check.
type WakeEvent struct {
	State   WakeState
	Attempt int
	Max     int
	Err     error
}

// WakeUpConfig controls the wake-up check.
type WakeUpConfig struct {
	Retries int
	Delay   time.Duration
	Timeout time.Duration
}

// WakeUp pings a backend that may be asleep on a free-tier host. The check
// runs at most once per WakeUp value no matter how often Run is called.
type WakeUp struct {
	health HealthChecker
	cfg    WakeUpConfig
	logger logging.Logger

	once sync.Once
	err  error
}

func NewWakeUp(health HealthChecker, cfg WakeUpConfig, logger logging.Logger) *WakeUp {
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.Delay <= 0 {
		cfg.Delay = time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &WakeUp{health: health, cfg: cfg, logger: logger}
}

// Run performs the check on the first call and returns its result on every
// call. notify, if not nil, receives progress events from the first call
// only.
func (w *WakeUp) Run(ctx context.Context, notify func(WakeEvent)) error {
	w.once.Do(func() {
		w.err = w.run(ctx, notify)
	})
	return w.err
}

func (w *WakeUp) run(ctx context.Context, notify func(WakeEvent)) error {
	if notify == nil {
		notify = func(WakeEvent) {}
	}

	backoff := retry.WithMaxRetries(uint64(w.cfg.Retries-1), retry.NewConstant(w.cfg.Delay))

	attempt := 0
	var lastErr error
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		notify(WakeEvent{State: WakeAttempt, Attempt: attempt, Max: w.cfg.Retries})

		attemptCtx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()

		if err := w.health.Health(attemptCtx); err != nil {
			lastErr = err
			w.logger.Debug(ctx, "backend not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		w.logger.Warn(ctx, "backend did not wake up", "attempts", attempt, "error", lastErr)
		notify(WakeEvent{State: WakeExhausted, Attempt: attempt, Max: w.cfg.Retries, Err: lastErr})
		return err
	}

	w.logger.Info(ctx, "backend is awake", "attempts", attempt)
	notify(WakeEvent{State: WakeReady, Attempt: attempt, Max: w.cfg.Retries})
	return nil
}
