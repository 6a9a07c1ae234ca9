package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/config"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/idolcode/internal/client/services"
	"github.com/dmitrijs2005/idolcode/internal/client/workspace"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// tokenHolder is implemented by gateways that carry a session token.
type tokenHolder interface {
	SetToken(token string)
	Token() string
}

// App holds everything the REPL commands work with.
type App struct {
	cfg    *config.Config
	logger logging.Logger
	db     *sql.DB

	client   client.Client
	session  *services.SessionStore
	auth     *services.AuthService
	wake     *services.WakeUp
	searcher *services.Searcher
	drafts   drafts.Repository

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu          sync.Mutex
	suggestions []models.Coder
	results     chan services.SearchResult

	dashboard *services.Dashboard
	returnTo  *Destination
	// openWorkspace runs the workspace sub-REPL; replaced in tests.
	openWorkspace func(ctx context.Context, ws *workspace.Workspace) error
}

// NewApp opens the local store and wires the services against the backend
// at cfg.BackendURL.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, cfg.DBPath())
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	apiClient, err := client.NewHTTPClient(cfg.BackendURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(cfg, logger, apiClient, repos.Metadata, repos.Drafts)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, c client.Client, meta metadata.Repository, dr drafts.Repository) *App {
	session := services.NewSessionStore(meta, c, logger)
	a := &App{
		cfg:     cfg,
		logger:  logger,
		client:  c,
		session: session,
		auth:    services.NewAuthService(c, session, logger),
		wake: services.NewWakeUp(c, services.WakeUpConfig{
			Retries: cfg.HealthRetries,
			Delay:   cfg.HealthRetryDelay,
			Timeout: cfg.HealthTimeout,
		}, logger),
		drafts:  dr,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
		results: make(chan services.SearchResult, 16),
	}
	a.searcher = services.NewSearcher(c, services.SearchConfig{
		Debounce:  cfg.SearchDebounce,
		MinLength: cfg.SearchMinLength,
		Limit:     cfg.SearchLimit,
	}, logger, a.onSearchResult)
	a.openWorkspace = a.runWorkspace
	return a
}

// Run restores the session, wakes the backend and blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	a.println(titleStyle.Render("Idolcode") + dimStyle.Render(" (type 'help' for commands)"))
	a.Start(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Start restores the persisted session and runs the wake-up check.
func (a *App) Start(ctx context.Context) {
	a.restoreSession(ctx)
	_ = a.WakeUp(ctx)
}

func (a *App) restoreSession(ctx context.Context) {
	a.session.Restore(ctx)

	u := a.session.User()
	if u == nil {
		return
	}
	if th, ok := a.client.(tokenHolder); ok && u.Token != "" {
		th.SetToken(u.Token)
	}
	if client.TokenExpired(u.Token, a.now()) {
		a.notice("Your session has expired. Please log in again.")
	}
}

// WakeUp runs the backend health check, printing progress. It only probes
// the backend once per process.
func (a *App) WakeUp(ctx context.Context) error {
	err := a.wake.Run(ctx, func(ev services.WakeEvent) {
		switch ev.State {
		case services.WakeAttempt:
			if ev.Attempt > 1 {
				a.println(dimStyle.Render(fmt.Sprintf("Waking up the server… (attempt %d/%d)", ev.Attempt, ev.Max)))
			}
		case services.WakeReady:
			if ev.Attempt > 1 {
				a.println(successStyle.Render("Server is ready!"))
			}
		case services.WakeExhausted:
			a.notice("The server is taking longer than expected. Some features may be unavailable.")
		}
	})
	return err
}

// Close stops background work and releases the local store.
func (a *App) Close(ctx context.Context) {
	a.searcher.Close()
	a.session.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus is shown in the prompt: "(alice → tourist)".
func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Handle
	}
	if i := a.session.Idol(); i != nil {
		if s != "" {
			s += " "
		}
		s += "→ " + i.Handle
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) exportDir() string {
	return filepath.Join(a.cfg.DataDir, "solutions")
}

func (a *App) println(v ...any) {
	_, _ = lipgloss.Fprintln(a.out, v...)
}

// notice prints a dismissible warning, used for transient backend errors.
func (a *App) notice(msg string) {
	a.println(warnStyle.Render("! " + msg))
}

func (a *App) fail(msg string) {
	a.println(errorStyle.Render(msg))
}

func (a *App) success(msg string) {
	a.println(successStyle.Render(msg))
}
