package workspace

import "errors"

// ErrChatLocked is returned by Chat while the workspace is in Rival mode.
var ErrChatLocked = errors.New("chat is locked in rival mode")

// Mode selects between the assisted and the timed workspace.
type Mode int

const (
	// ModeCoach enables the duck chat.
	ModeCoach Mode = iota
	// ModeRival locks the chat and offers the countdown.
	ModeRival
)

func (m Mode) String() string {
	if m == ModeRival {
		return "rival"
	}
	return "coach"
}

// ParseMode accepts "coach" or "rival".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "coach":
		return ModeCoach, true
	case "rival":
		return ModeRival, true
	}
	return ModeCoach, false
}
