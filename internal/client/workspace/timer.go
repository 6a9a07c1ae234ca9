package workspace

import (
	"errors"
	"slices"
	"sync"
	"time"
)

// TimerPresets are the countdown lengths offered in Rival mode, in minutes.
var TimerPresets = []int{15, 30, 45, 60, 120}

var (
	ErrInvalidPreset = errors.New("timer length must be one of the presets")
	ErrTimerState    = errors.New("timer cannot do that now")
)

type TimerState int

const (
	TimerStopped TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerExpired:
		return "expired"
	default:
		return "stopped"
	}
}

// Timer is the Rival mode countdown. It moves stopped -> running <-> paused
// and ends in expired when the remaining time reaches zero. Only Start
// leaves expired. At most one ticker goroutine runs at a time.
//
// A held timer keeps its state but does not tick: a running countdown
// stays armed and continues from the same remaining time on Release.
type Timer struct {
	tick     time.Duration
	reset    time.Duration
	onExpire func()

	mu        sync.Mutex
	state     TimerState
	remaining time.Duration
	held      bool
	gen       uint64
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewTimer returns a stopped timer showing reset. onExpire, if set, runs
// once per expiry on the ticker goroutine.
func NewTimer(reset time.Duration, onExpire func()) *Timer {
	return newTimer(time.Second, reset, onExpire)
}

func newTimer(tick, reset time.Duration, onExpire func()) *Timer {
	return &Timer{tick: tick, reset: reset, remaining: reset, onExpire: onExpire}
}

// Start begins a countdown of one of TimerPresets minutes, replacing any
// countdown in progress.
func (t *Timer) Start(minutes int) error {
	if !slices.Contains(TimerPresets, minutes) {
		return ErrInvalidPreset
	}
	t.startFor(time.Duration(minutes) * time.Minute)
	return nil
}

func (t *Timer) startFor(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.haltLocked()
	t.remaining = d
	t.runLocked()
}

// Pause freezes a running countdown.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerRunning {
		return ErrTimerState
	}
	t.haltLocked()
	t.state = TimerPaused
	return nil
}

// Resume continues a paused countdown that still has time left.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerPaused || t.remaining <= 0 {
		return ErrTimerState
	}
	t.runLocked()
	return nil
}

// Stop cancels the countdown and resets the display.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.haltLocked()
	t.state = TimerStopped
	t.remaining = t.reset
}

// Hold stops the ticker without leaving the current state.
func (t *Timer) Hold() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = true
	t.haltLocked()
}

// Release lets an armed countdown tick again.
func (t *Timer) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.held {
		return
	}
	t.held = false
	if t.state == TimerRunning && t.remaining > 0 {
		t.runLocked()
	}
}

// Held reports whether the timer is held.
func (t *Timer) Held() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held
}

// State returns the current state and remaining time.
func (t *Timer) State() (TimerState, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.remaining
}

// Close stops the ticker goroutine and waits for it to exit.
func (t *Timer) Close() {
	t.mu.Lock()
	t.haltLocked()
	if t.state == TimerRunning {
		t.state = TimerPaused
	}
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Timer) haltLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.gen++
}

func (t *Timer) runLocked() {
	t.state = TimerRunning
	if t.held {
		return
	}
	t.stop = make(chan struct{})
	gen := t.gen
	stop := t.stop

	t.wg.Add(1)
	go t.loop(gen, stop)
}

func (t *Timer) loop(gen uint64, stop <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if expired := t.advance(gen); expired {
				if t.onExpire != nil {
					t.onExpire()
				}
				return
			}
		}
	}
}

// advance subtracts one tick and reports whether this tick expired the
// countdown. Ticks from a superseded run are ignored.
func (t *Timer) advance(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || t.state != TimerRunning {
		return false
	}
	t.remaining -= t.tick
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.state = TimerExpired
	t.stop = nil
	return true
}
