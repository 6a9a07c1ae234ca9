package common

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks user input that must be corrected before a request
	// is sent. The wrapped message is meant to be shown inline.
	ErrValidation = errors.New("validation error")

	// ErrBusy is returned when an operation guarded by a busy flag is
	// re-issued while the previous one is still outstanding.
	ErrBusy = errors.New("operation already in progress")

	// ErrNotAuthenticated is returned by operations that need a user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoIdol is returned when an idol is required but none is selected.
	ErrNoIdol = errors.New("no idol selected")
)

// Validationf builds an ErrValidation carrying a user-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// UserMessage strips the sentinel prefix from a validation error so only the
// human-readable part is shown.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if errors.Is(err, ErrValidation) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
