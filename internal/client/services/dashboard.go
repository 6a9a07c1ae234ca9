package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// FocusTopics is how many topics a custom skill focus must name.
const FocusTopics = 3

// SectionState is the request state of one dashboard section.
type SectionState int

const (
	SectionIdle SectionState = iota
	SectionLoading
	SectionReady
	SectionFailed
)

// Section is the state and payload of one independently loaded part of the
// dashboard.
type Section[T any] struct {
	State SectionState
	Data  T
	Err   error
}

// DashboardSnapshot is a copy of the dashboard state for rendering.
type DashboardSnapshot struct {
	UserHandle string
	IdolHandle string
	Overview   Section[*models.DashboardData]
	Skills     Section[*models.SkillComparison]
	History    Section[[]models.HistoryEntry]
	// Focus is the custom topic selection, empty for the default weakest
	// topics.
	Focus []string
}

// Recommendations returns the current roadmap, if the overview is loaded.
func (s DashboardSnapshot) Recommendations() []models.Recommendation {
	if s.Overview.Data == nil || s.Overview.Data.Recommendations == nil {
		return nil
	}
	return s.Overview.Data.Recommendations.Recommendations
}

// CheckResult reports a submissions check.
type CheckResult struct {
	Solved []models.Recommendation
	// Recorded counts solved problems written to the history.
	Recorded int
}

// Dashboard loads and refreshes the comparison page for one user/idol pair.
type Dashboard struct {
	client client.Client
	logger logging.Logger
	user   string
	idol   string

	mu   sync.RWMutex
	snap DashboardSnapshot

	refreshing atomic.Bool
	checking   atomic.Bool
}

func NewDashboard(c client.Client, userHandle, idolHandle string, logger logging.Logger) *Dashboard {
	return &Dashboard{
		client: c,
		logger: logger.With("user", userHandle, "idol", idolHandle),
		user:   userHandle,
		idol:   idolHandle,
		snap:   DashboardSnapshot{UserHandle: userHandle, IdolHandle: idolHandle},
	}
}

// Snapshot returns the current state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := d.snap
	snap.Focus = append([]string(nil), d.snap.Focus...)
	return snap
}

// Load fetches the overview bundle, the skill comparison and the history
// concurrently. A failing section does not affect the others.
func (d *Dashboard) Load(ctx context.Context) DashboardSnapshot {
	d.mu.Lock()
	d.snap.Overview.State = SectionLoading
	d.snap.Skills.State = SectionLoading
	d.snap.History.State = SectionLoading
	focus := append([]string(nil), d.snap.Focus...)
	d.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		d.loadOverview(ctx, false)
	}()
	go func() {
		defer wg.Done()
		d.loadSkills(ctx, focus)
	}()
	go func() {
		defer wg.Done()
		d.loadHistory(ctx)
	}()
	wg.Wait()

	return d.Snapshot()
}

func (d *Dashboard) loadOverview(ctx context.Context, refresh bool) error {
	data, err := d.client.Dashboard(ctx, d.user, d.idol, refresh)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.logger.Warn(ctx, "dashboard load failed", "refresh", refresh, "error", err)
		d.snap.Overview = Section[*models.DashboardData]{State: SectionFailed, Data: d.snap.Overview.Data, Err: err}
		return err
	}
	d.snap.Overview = Section[*models.DashboardData]{State: SectionReady, Data: data}
	if refresh && data.History != nil {
		d.snap.History = Section[[]models.HistoryEntry]{State: SectionReady, Data: data.History}
	}
	return nil
}

func (d *Dashboard) loadSkills(ctx context.Context, topics []string) error {
	data, err := d.client.SkillComparison(ctx, d.user, d.idol, topics)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.logger.Warn(ctx, "skill comparison failed", "error", err)
		d.snap.Skills = Section[*models.SkillComparison]{State: SectionFailed, Data: d.snap.Skills.Data, Err: err}
		return err
	}
	d.snap.Skills = Section[*models.SkillComparison]{State: SectionReady, Data: data}
	d.snap.Focus = topics
	return nil
}

func (d *Dashboard) loadHistory(ctx context.Context) error {
	hist, err := d.client.ProblemHistory(ctx, d.user)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.logger.Warn(ctx, "history load failed", "error", err)
		d.snap.History = Section[[]models.HistoryEntry]{State: SectionFailed, Data: d.snap.History.Data, Err: err}
		return err
	}
	d.snap.History = Section[[]models.HistoryEntry]{State: SectionReady, Data: hist}
	return nil
}

// Refresh asks the backend to rebuild the bundle from fresh data. It fails
// with common.ErrBusy while a previous refresh is running.
func (d *Dashboard) Refresh(ctx context.Context) error {
	if !d.refreshing.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer d.refreshing.Store(false)
	return d.loadOverview(ctx, true)
}

// ReloadHistory refetches only the history.
func (d *Dashboard) ReloadHistory(ctx context.Context) error {
	return d.loadHistory(ctx)
}

// SetFocus switches the skill comparison to exactly FocusTopics topics, or
// back to the default weakest topics when topics is empty.
func (d *Dashboard) SetFocus(ctx context.Context, topics []string) error {
	cleaned, err := ValidateFocus(topics)
	if err != nil {
		return err
	}
	return d.loadSkills(ctx, cleaned)
}

// ValidateFocus trims topics and checks the custom focus rules.
func ValidateFocus(topics []string) ([]string, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(topics))
	cleaned := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(t)]; dup {
			continue
		}
		seen[strings.ToLower(t)] = struct{}{}
		cleaned = append(cleaned, t)
	}
	if len(cleaned) != FocusTopics {
		return nil, common.Validationf("Select exactly %d topics to compare", FocusTopics)
	}
	return cleaned, nil
}

// CheckSubmissions asks the backend which roadmap problems the user has
// solved, records each solved one in the history and refreshes the
// dashboard unless a refresh is already running. Nothing solved is not an
// error: the result is simply empty. It fails with common.ErrBusy while a
// previous check is running.
func (d *Dashboard) CheckSubmissions(ctx context.Context) (*CheckResult, error) {
	if !d.checking.CompareAndSwap(false, true) {
		return nil, common.ErrBusy
	}
	defer d.checking.Store(false)

	recs := d.Snapshot().Recommendations()
	if len(recs) == 0 {
		return &CheckResult{}, nil
	}

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ProblemID.String()
	}

	subs, err := d.client.CheckSubmissions(ctx, d.user, ids)
	if err != nil {
		return nil, fmt.Errorf("check submissions: %w", err)
	}

	res := &CheckResult{}
	for _, r := range recs {
		if subs[r.ProblemID.String()].Solved {
			res.Solved = append(res.Solved, r)
		}
	}
	if len(res.Solved) == 0 {
		return res, nil
	}

	for _, r := range res.Solved {
		entry := models.SolvedEntry(d.user, d.idol, r)
		if err := d.client.RecordHistory(ctx, entry); err != nil {
			d.logger.Warn(ctx, "failed to record solved problem", "problem", r.ProblemID, "error", err)
			continue
		}
		res.Recorded++
	}

	if !d.refreshing.CompareAndSwap(false, true) {
		d.logger.Debug(ctx, "refresh already running, skipping reload after check")
		return res, nil
	}
	defer d.refreshing.Store(false)
	if err := d.loadOverview(ctx, true); err != nil {
		return res, fmt.Errorf("refresh after check: %w", err)
	}
	return res, nil
}

// Recommendation returns the n-th (1-based) roadmap problem.
func (d *Dashboard) Recommendation(n int) (models.Recommendation, bool) {
	recs := d.Snapshot().Recommendations()
	if n < 1 || n > len(recs) {
		return models.Recommendation{}, false
	}
	return recs[n-1], true
}

// Attempt returns the n-th (1-based) history entry.
func (d *Dashboard) Attempt(n int) (models.HistoryEntry, bool) {
	hist := d.Snapshot().History.Data
	if n < 1 || n > len(hist) {
		return models.HistoryEntry{}, false
	}
	return hist[n-1], true
}
