package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/filex"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

const (
	// ChatHistoryLimit is how many earlier messages accompany a question.
	ChatHistoryLimit = 10

	Greeting      = "Hey there! I'm your coding duck. How can I help you solve this problem?"
	FallbackReply = "Quack! Something went wrong. Please try again."
	TimeUpMessage = "Time's up!"

	defaultFlushDelay   = time.Second
	defaultTimerMinutes = 30
)

var (
	ErrNoTestCases = errors.New("no test cases available for this problem")
	ErrLastFile    = errors.New("cannot close the last file")
	ErrNoSuchFile  = errors.New("no such file")
)

// TestState is the state of the sample test run.
type TestState int

const (
	TestIdle TestState = iota
	TestRunning
	TestPassed
	TestFailed
)

func (s TestState) String() string {
	switch s {
	case TestRunning:
		return "running-test"
	case TestPassed:
		return "passed"
	case TestFailed:
		return "failed"
	default:
		return "idle"
	}
}

// TestRun is the outcome of the latest sample test run. Detail is set when
// the run itself failed.
type TestRun struct {
	State  TestState
	Report *models.TestReport
	Detail string
}

// Config tunes a workspace.
type Config struct {
	// FlushDelay is the debounce between an edit and the draft write.
	FlushDelay time.Duration
	// TimerMinutes is what the countdown shows when stopped.
	TimerMinutes int
	// ExportDir receives exported solution files.
	ExportDir string
	// IdolHandle is sent with chat questions.
	IdolHandle string
	// OnTimeUp runs once each time the countdown expires.
	OnTimeUp func()
}

// Workspace is an open problem. All methods are safe for concurrent use.
type Workspace struct {
	key     models.ProblemKey
	problem *models.Problem
	client  client.Client
	repo    drafts.Repository
	logger  logging.Logger
	cfg     Config
	now     func() time.Time
	timer   *Timer

	mu    sync.Mutex
	set   models.DraftSet
	mode  Mode
	chat  []models.ChatMessage
	test  TestRun
	dirty bool

	flushTimer *time.Timer
	pending    sync.WaitGroup
	// writeMu orders draft writes so a later snapshot never lands first.
	writeMu sync.Mutex

	testing  atomic.Bool
	chatting atomic.Bool
}

// Open fetches the problem and restores its drafts. A draft that cannot be
// read is replaced by the default file; a problem that cannot be fetched
// fails the open.
func Open(ctx context.Context, key models.ProblemKey, c client.Client, repo drafts.Repository, cfg Config, logger logging.Logger) (*Workspace, error) {
	key.ContestID = strings.TrimSpace(key.ContestID)
	key.Index = strings.ToUpper(strings.TrimSpace(key.Index))
	if key.ContestID == "" || key.Index == "" {
		return nil, common.Validationf("Usage: open <contestId> <index>")
	}

	if cfg.FlushDelay <= 0 {
		cfg.FlushDelay = defaultFlushDelay
	}
	if cfg.TimerMinutes <= 0 {
		cfg.TimerMinutes = defaultTimerMinutes
	}

	logger = logger.With("problem", key.String())

	problem, err := c.Problem(ctx, key.ContestID, key.Index)
	if err != nil {
		return nil, fmt.Errorf("load problem %s: %w", key, err)
	}

	set, err := loadDraftSet(ctx, repo, key, logger)
	if err != nil {
		logger.Warn(ctx, "draft restore failed, starting fresh", "error", err)
	}

	ws := &Workspace{
		key:     key,
		problem: problem,
		client:  c,
		repo:    repo,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
		set:     set,
		chat:    []models.ChatMessage{{Role: models.RoleAssistant, Content: Greeting}},
	}
	ws.timer = NewTimer(time.Duration(cfg.TimerMinutes)*time.Minute, ws.timeUp)
	ws.timer.Hold()
	return ws, nil
}

func (w *Workspace) timeUp() {
	w.logger.Info(context.Background(), "countdown expired")
	if w.cfg.OnTimeUp != nil {
		w.cfg.OnTimeUp()
	}
}

func (w *Workspace) Key() models.ProblemKey   { return w.key }
func (w *Workspace) Problem() *models.Problem { return w.problem }
func (w *Workspace) Timer() *Timer            { return w.timer }

// Files returns a copy of the open files.
func (w *Workspace) Files() []models.DraftFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.DraftFile, len(w.set.Files))
	copy(out, w.set.Files)
	return out
}

// Active returns the active file.
func (w *Workspace) Active() models.DraftFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeLocked()
}

func (w *Workspace) activeLocked() models.DraftFile {
	if i := indexOf(w.set.Files, w.set.ActiveFileID); i >= 0 {
		return w.set.Files[i]
	}
	return w.set.Files[0]
}

// Resolve finds a file by id, name or 1-based position.
func (w *Workspace) Resolve(ref string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range w.set.Files {
		if f.ID == ref || f.Name == ref {
			return f.ID, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(w.set.Files) {
		return w.set.Files[n-1].ID, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoSuchFile, ref)
}

// AddFile appends a Python file named file<N+1> and makes it active.
func (w *Workspace) AddFile() models.DraftFile {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := models.DraftFile{
		ID:       uuid.NewString(),
		Name:     fmt.Sprintf("file%d", len(w.set.Files)+1),
		Language: models.LangPython,
		Content:  Info(models.LangPython).Template,
	}
	w.set.Files = append(w.set.Files, f)
	w.set.ActiveFileID = f.ID
	w.scheduleFlushLocked()
	return f
}

// CloseFile removes a file. The last file cannot be closed. Closing the
// active file activates the first remaining one.
func (w *Workspace) CloseFile(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := indexOf(w.set.Files, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchFile, id)
	}
	if len(w.set.Files) == 1 {
		return ErrLastFile
	}

	w.set.Files = append(w.set.Files[:i:i], w.set.Files[i+1:]...)
	if w.set.ActiveFileID == id {
		w.set.ActiveFileID = w.set.Files[0].ID
	}
	w.scheduleFlushLocked()
	return nil
}

// SetLanguage changes a file's language and replaces its content with the
// language template.
func (w *Workspace) SetLanguage(id string, lang models.Language) error {
	if _, ok := languages[lang]; !ok {
		return fmt.Errorf("unsupported language %q", lang)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i := indexOf(w.set.Files, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchFile, id)
	}
	w.set.Files[i].Language = lang
	w.set.Files[i].Content = Info(lang).Template
	w.scheduleFlushLocked()
	return nil
}

// Activate switches the active file.
func (w *Workspace) Activate(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if indexOf(w.set.Files, id) < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchFile, id)
	}
	w.set.ActiveFileID = id
	w.scheduleFlushLocked()
	return nil
}

// SetContent replaces the active file's content and schedules a draft
// write.
func (w *Workspace) SetContent(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := indexOf(w.set.Files, w.set.ActiveFileID)
	if i < 0 {
		i = 0
	}
	w.set.Files[i].Content = content
	w.scheduleFlushLocked()
}

func (w *Workspace) scheduleFlushLocked() {
	w.dirty = true
	if w.flushTimer != nil && w.flushTimer.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.flushTimer = time.AfterFunc(w.cfg.FlushDelay, func() {
		defer w.pending.Done()
		if err := w.flush(context.Background(), false); err != nil {
			w.logger.Warn(context.Background(), "draft save failed", "error", err)
		}
	})
}

// Flush writes the drafts now.
func (w *Workspace) Flush(ctx context.Context) error {
	return w.flush(ctx, true)
}

func (w *Workspace) flush(ctx context.Context, force bool) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	if !w.dirty && !force {
		w.mu.Unlock()
		return nil
	}
	payload, err := json.Marshal(w.set)
	w.dirty = false
	w.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := w.repo.Save(ctx, w.key, payload, w.now()); err != nil {
		w.mu.Lock()
		w.dirty = true
		w.mu.Unlock()
		return err
	}
	return nil
}

// Close cancels the pending write, flushes and stops the countdown.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.flushTimer != nil && w.flushTimer.Stop() {
		w.pending.Done()
	}
	w.flushTimer = nil
	w.mu.Unlock()

	w.pending.Wait()
	w.timer.Close()
	return w.flush(ctx, false)
}

// Mode returns the current mode.
func (w *Workspace) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// SetMode switches modes. The countdown only ticks in Rival mode: leaving
// Rival holds it at its remaining time and coming back continues it. The
// chat history is kept.
func (w *Workspace) SetMode(m Mode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mode = m
	if m == ModeRival {
		w.timer.Release()
	} else {
		w.timer.Hold()
	}
}

// ChatHistory returns a copy of the conversation, greeting included.
func (w *Workspace) ChatHistory() []models.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.ChatMessage, len(w.chat))
	copy(out, w.chat)
	return out
}

// Chat asks the duck a question about the problem and the active file. A
// failed request appends FallbackReply instead of an error.
func (w *Workspace) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", common.Validationf("Please enter a message")
	}

	w.mu.Lock()
	if w.mode == ModeRival {
		w.mu.Unlock()
		return "", ErrChatLocked
	}
	if !w.chatting.CompareAndSwap(false, true) {
		w.mu.Unlock()
		return "", common.ErrBusy
	}
	defer w.chatting.Store(false)

	start := max(0, len(w.chat)-ChatHistoryLimit)
	history := make([]models.ChatMessage, len(w.chat)-start)
	copy(history, w.chat[start:])

	active := w.activeLocked()
	w.chat = append(w.chat, models.ChatMessage{Role: models.RoleUser, Content: message})
	w.mu.Unlock()

	req := models.DuckChatRequest{
		Message:          message,
		ProblemTitle:     w.problem.Name,
		ProblemStatement: w.problem.ProblemStatement,
		Code:             active.Content,
		Language:         string(active.Language),
		IdolHandle:       w.cfg.IdolHandle,
		ChatHistory:      history,
	}

	reply, err := w.client.DuckChat(ctx, req)
	if err != nil || strings.TrimSpace(reply) == "" {
		w.logger.Warn(ctx, "duck chat failed", "error", err)
		reply = FallbackReply
	}

	w.mu.Lock()
	w.chat = append(w.chat, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	w.mu.Unlock()
	return reply, nil
}

// LastTestRun returns the latest test run.
func (w *Workspace) LastTestRun() TestRun {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.test
}

// RunTests runs the active file against the problem samples. A gateway
// failure is reported as a failed run carrying the backend detail.
func (w *Workspace) RunTests(ctx context.Context) (TestRun, error) {
	if len(w.problem.Examples) == 0 {
		return TestRun{}, ErrNoTestCases
	}
	if !w.testing.CompareAndSwap(false, true) {
		return TestRun{}, common.ErrBusy
	}
	defer w.testing.Store(false)

	w.mu.Lock()
	active := w.activeLocked()
	w.test = TestRun{State: TestRunning}
	w.mu.Unlock()

	cases := make([]models.TestCase, len(w.problem.Examples))
	for i, ex := range w.problem.Examples {
		cases[i] = models.TestCase{Input: ex.Input, Output: ex.Output}
	}

	report, err := w.client.TestCode(ctx, models.TestCodeRequest{
		Code:      active.Content,
		Language:  string(active.Language),
		TestCases: cases,
	})

	run := TestRun{State: TestFailed, Report: report}
	switch {
	case err != nil:
		w.logger.Warn(ctx, "test run failed", "error", err)
		run.Report = nil
		run.Detail = client.Detail(err, "Failed to run tests")
	case report.AllPassed:
		run.State = TestPassed
	}

	w.mu.Lock()
	w.test = run
	w.mu.Unlock()
	return run, nil
}

// SubmitURL is the platform page where the problem is submitted.
func (w *Workspace) SubmitURL() string {
	return fmt.Sprintf("%s/contest/%s/submit/%s", common.CodeforcesBaseURL, w.key.ContestID, w.key.Index)
}

// Submit saves the drafts and returns SubmitURL. The URL is returned even
// when the save fails.
func (w *Workspace) Submit(ctx context.Context) (string, error) {
	err := w.Flush(ctx)
	if err != nil {
		err = fmt.Errorf("save drafts: %w", err)
	}
	return w.SubmitURL(), err
}

// Export writes the active file to ExportDir as <contest><index><ext>.
func (w *Workspace) Export() (string, error) {
	if w.cfg.ExportDir == "" {
		return "", errors.New("no export directory configured")
	}
	f := w.Active()
	return filex.WriteSource(w.cfg.ExportDir, w.key.String()+Info(f.Language).Extension, f.Content)
}

// Load replaces the active file's content with a local file.
func (w *Workspace) Load(path string) error {
	content, err := filex.ReadSource(path)
	if err != nil {
		return err
	}
	w.SetContent(content)
	return nil
}
