package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/client/mocks"
	"github.com/dmitrijs2005/idolcode/internal/client/config"
	"github.com/dmitrijs2005/idolcode/internal/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	cfg.SearchDebounce = 20 * time.Millisecond
	cfg.RequestTimeout = 2 * time.Second
	cfg.HealthRetries = 1
	cfg.HealthRetryDelay = time.Millisecond
	cfg.DraftFlushDelay = time.Hour
	return cfg
}

// newTestApp builds an App over a fresh SQLite file and the given mock
// gateway. input is what the user types.
func newTestApp(t *testing.T, c *mocks.MockClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	c.On("SaveIdol", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := testConfig(t)
	db, err := client.InitDatabase(context.Background(), filepath.Join(cfg.DataDir, "idolcode.db"))
	require.NoError(t, err)
	repos := client.NewRepositories(db)

	a := newApp(cfg, logging.Discard(), c, repos.Metadata, repos.Drafts)
	a.db = db
	a.reader = bufio.NewReader(bytes.NewBufferString(input))
	out := &bytes.Buffer{}
	a.out = out
	t.Cleanup(func() { a.Close(context.Background()) })
	return a, out
}

// signIn puts a user into the session without going through the prompts.
func signIn(t *testing.T, a *App, handle string) {
	t.Helper()
	require.NoError(t, a.session.Login(context.Background(), handle, map[string]any{"success": true}))
}

func selectIdol(t *testing.T, a *App, handle string) {
	t.Helper()
	require.NoError(t, a.session.SelectIdol(context.Background(), handle, map[string]any{"rating": 3800}))
}

func stubInputs(t *testing.T, handle string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return handle, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := confirm
	confirm = func(*bufio.Reader, string, io.Writer) (bool, error) { return answer, nil }
	t.Cleanup(func() { confirm = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// expectDashboard registers the three dashboard fetches.
func expectDashboard(c *mocks.MockClient, user, idol string) {
	c.On("Dashboard", mock.Anything, user, idol, false).Return(bundle(recA), nil).Maybe()
	c.On("Dashboard", mock.Anything, user, idol, true).Return(bundle(recA), nil).Maybe()
	c.On("SkillComparison", mock.Anything, user, idol, mock.Anything).Return(skills(), nil).Maybe()
	c.On("ProblemHistory", mock.Anything, user).Return(history(), nil).Maybe()
}
