package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Search(ctx context.Context, args []string) error
	Type(ctx context.Context, args []string) error
	Pick(ctx context.Context, args []string) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Dashboard(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Check(ctx context.Context) error
	Skills(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Solve(ctx context.Context, args []string) error
	Retry(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Drafts(ctx context.Context) error

	Status(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpGuest = "Available commands: search <query>, type <text>, pick <n|handle>, register, login, open <contest> <index>, drafts, status, reset, exit"
	helpUser  = "Available commands: search <query>, type <text>, pick <n|handle>, dashboard [idol], refresh, check, skills [t1, t2, t3|reset|topics], history, solve <n>, retry <n>, open <contest> <index>, drafts, whoami, status, logout, reset, exit"
)

// runREPL starts a simple read–eval–print loop for the idolcode CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("idolcode %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "search":
			_ = a.Search(ctx, args)
		case "type":
			_ = a.Type(ctx, args)
		case "pick":
			_ = a.Pick(ctx, args)

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "dashboard", "d":
			_ = a.Dashboard(ctx, args)
		case "refresh":
			_ = a.Refresh(ctx)
		case "check":
			_ = a.Check(ctx)
		case "skills":
			_ = a.Skills(ctx, args)
		case "history":
			_ = a.History(ctx)
		case "solve":
			_ = a.Solve(ctx, args)
		case "retry":
			_ = a.Retry(ctx, args)
		case "open":
			_ = a.Open(ctx, args)
		case "drafts":
			_ = a.Drafts(ctx)

		case "status":
			_ = a.Status(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Status prints the backend reachability and the session summary.
func (a *App) Status(ctx context.Context) error {
	if err := a.client.Health(ctx); err != nil {
		a.notice("Backend unreachable at " + a.cfg.BackendURL)
	} else {
		a.success("Backend online at " + a.cfg.BackendURL)
	}
	return a.WhoAmI(ctx)
}
