package cli

import "github.com/dmitrijs2005/idolcode/internal/client/services"

// Screen is a top-level REPL destination.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenWorkspace
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenDashboard:
		return "dashboard"
	case ScreenWorkspace:
		return "workspace"
	default:
		return "home"
	}
}

const (
	msgLoginFirst  = "Please login first"
	msgSelectFirst = "Please select a coding idol first"
)

// Destination is where a command wants to go. Args carry the command
// arguments so the destination can be reopened after a detour through
// login.
type Destination struct {
	Screen Screen
	Args   []string
}

// Route is the outcome of the navigation guard. ReturnTo is set when the
// user was sent to login and should land on the original destination
// afterwards.
type Route struct {
	Screen   Screen
	ReturnTo *Destination
	Message  string
}

// guard decides where dest actually leads for the given session state.
// The dashboard needs a signed-in user and an idol, the idol coming either
// from the session or from the command arguments. Unauthenticated users
// are sent to login first, whatever the idol state.
func guard(dest Destination, session *services.SessionStore) Route {
	if dest.Screen != ScreenDashboard {
		return Route{Screen: dest.Screen}
	}
	if !session.IsAuthenticated() {
		d := dest
		return Route{Screen: ScreenLogin, ReturnTo: &d, Message: msgLoginFirst}
	}
	if len(dest.Args) == 0 && session.Idol() == nil {
		return Route{Screen: ScreenHome, Message: msgSelectFirst}
	}
	return Route{Screen: ScreenDashboard}
}
