package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/services"
	"github.com/dmitrijs2005/idolcode/internal/client/workspace"
)

// navigate sends the user to dest through the navigation guard.
func (a *App) navigate(ctx context.Context, dest Destination) error {
	route := guard(dest, a.session)
	switch route.Screen {
	case ScreenLogin:
		a.notice(route.Message)
		a.returnTo = route.ReturnTo
		return a.Login(ctx)
	case ScreenHome:
		a.fail(route.Message)
		return nil
	case ScreenWorkspace:
		return a.Open(ctx, dest.Args)
	case ScreenDashboard:
		return a.showDashboard(ctx, dest.Args)
	}
	return nil
}

// Dashboard opens the comparison with the given idol, or with the selected
// one.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	return a.navigate(ctx, Destination{Screen: ScreenDashboard, Args: args})
}

func (a *App) showDashboard(ctx context.Context, args []string) error {
	idol := ""
	if len(args) > 0 {
		idol = args[0]
	} else if i := a.session.Idol(); i != nil {
		idol = i.Handle
	}

	a.dashboard = services.NewDashboard(a.client, a.session.User().Handle, idol, a.logger)
	snap := a.dashboard.Load(ctx)
	a.println(renderDashboard(snap, a.now()))
	return nil
}

// currentDashboard returns the open dashboard, opening the default one
// first when needed. It is nil when the guard sent the user elsewhere.
func (a *App) currentDashboard(ctx context.Context) *services.Dashboard {
	if a.dashboard != nil && a.session.IsAuthenticated() {
		return a.dashboard
	}
	a.dashboard = nil
	_ = a.navigate(ctx, Destination{Screen: ScreenDashboard})
	return a.dashboard
}

// Refresh rebuilds the dashboard from fresh platform data.
func (a *App) Refresh(ctx context.Context) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}
	if err := d.Refresh(ctx); err != nil {
		a.report(err, "Failed to refresh dashboard")
		return err
	}
	a.success("Dashboard refreshed with latest data!")
	a.println(renderDashboard(d.Snapshot(), a.now()))
	return nil
}

// Check looks for roadmap problems solved on the platform since the last
// load and records them.
func (a *App) Check(ctx context.Context) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}
	if len(d.Snapshot().Recommendations()) == 0 {
		a.println(hintStyle.Render(emptyRecommendations))
		return nil
	}
	res, err := d.CheckSubmissions(ctx)
	if err != nil && (res == nil || len(res.Solved) == 0) {
		a.report(err, "Failed to check Codeforces submissions")
		return err
	}
	if len(res.Solved) == 0 {
		a.println(hintStyle.Render("No solved problems detected in your recent Codeforces submissions."))
		return nil
	}

	a.success(fmt.Sprintf("Detected %d solved problem(s)! Refreshing recommendations...", len(res.Solved)))
	if err != nil {
		a.report(err, "Failed to refresh dashboard")
	}
	snap := d.Snapshot()
	if snap.Overview.Data != nil {
		a.println(renderRecommendations(snap.Overview.Data.Recommendations))
	}
	return nil
}

// Skills shows the skill map. With three topics it switches the focus to
// them; "reset" goes back to the weakest topics; "topics" lists the topic
// names the backend knows.
func (a *App) Skills(ctx context.Context, args []string) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}

	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "topics":
		snap := d.Snapshot()
		if snap.Skills.Data == nil || len(snap.Skills.Data.AllTopics) == 0 {
			a.println(hintStyle.Render(emptySkills))
			return nil
		}
		a.println(strings.Join(snap.Skills.Data.AllTopics, ", "))
		return nil
	case len(args) == 1 && args[0] == "reset":
		if err := d.SetFocus(ctx, nil); err != nil {
			a.report(err, "Failed to load skill comparison data.")
			return err
		}
	default:
		if err := d.SetFocus(ctx, parseTopics(args)); err != nil {
			a.report(err, "Failed to load skill comparison data.")
			return err
		}
		a.success("Skill focus updated!")
	}

	snap := d.Snapshot()
	if snap.Skills.State == services.SectionFailed {
		a.report(snap.Skills.Err, "Failed to load skill comparison data.")
		return nil
	}
	a.println(renderSkills(snap.Skills.Data, snap.Focus))
	return nil
}

// parseTopics accepts "a, b c, d" as three topics and "a b c" as three
// single-word topics.
func parseTopics(args []string) []string {
	joined := strings.Join(args, " ")
	if strings.Contains(joined, ",") {
		return strings.Split(joined, ",")
	}
	return args
}

// History reloads and lists the problem history.
func (a *App) History(ctx context.Context) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}
	if err := d.ReloadHistory(ctx); err != nil {
		a.report(err, "Failed to load problem history.")
		return err
	}
	a.println(renderHistory(d.Snapshot().History.Data, a.now()))
	return nil
}

// Solve opens the n-th roadmap problem.
func (a *App) Solve(ctx context.Context, args []string) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}
	n, ok := parseIndex(args)
	if !ok {
		a.fail("Usage: solve <n>")
		return nil
	}
	rec, ok := d.Recommendation(n)
	if !ok {
		a.fail(fmt.Sprintf("There is no problem %d on your roadmap", n))
		return nil
	}
	return a.Open(ctx, []string{rec.ContestID.String(), rec.Index})
}

// Retry reopens the n-th problem from the history.
func (a *App) Retry(ctx context.Context, args []string) error {
	d := a.currentDashboard(ctx)
	if d == nil {
		return nil
	}
	n, ok := parseIndex(args)
	if !ok {
		a.fail("Usage: retry <n>")
		return nil
	}
	e, ok := d.Attempt(n)
	if !ok {
		a.fail(fmt.Sprintf("There is no attempt %d in your history", n))
		return nil
	}
	return a.Open(ctx, []string{e.ContestID.String(), e.Index})
}

func parseIndex(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	return n, err == nil
}

var problemRef = regexp.MustCompile(`^(\d+)([A-Za-z]\d?)$`)

// parseProblemKey accepts "1520 A" as well as "1520A".
func parseProblemKey(args []string) (models.ProblemKey, bool) {
	switch len(args) {
	case 1:
		m := problemRef.FindStringSubmatch(args[0])
		if m == nil {
			return models.ProblemKey{}, false
		}
		return models.ProblemKey{ContestID: m[1], Index: strings.ToUpper(m[2])}, true
	case 2:
		return models.ProblemKey{ContestID: args[0], Index: strings.ToUpper(args[1])}, true
	}
	return models.ProblemKey{}, false
}

// Open loads a problem and enters its workspace.
func (a *App) Open(ctx context.Context, args []string) error {
	key, ok := parseProblemKey(args)
	if !ok {
		a.fail("Usage: open <contestId> <index>")
		return nil
	}

	idol := ""
	if i := a.session.Idol(); i != nil {
		idol = i.Handle
	}

	ws, err := workspace.Open(ctx, key, a.client, a.drafts, workspace.Config{
		FlushDelay:   a.cfg.DraftFlushDelay,
		TimerMinutes: a.cfg.DefaultTimerMinutes,
		ExportDir:    a.exportDir(),
		IdolHandle:   idol,
		OnTimeUp: func() {
			a.println("\n" + errorStyle.Render(workspace.TimeUpMessage))
		},
	}, a.logger)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.fail("Problem not found")
		} else {
			a.report(err, "Failed to load problem")
		}
		return err
	}
	defer func() {
		if err := ws.Close(ctx); err != nil {
			a.logger.Warn(ctx, "saving drafts on close", "problem", key.String(), "error", err)
			a.notice("Your latest edits could not be saved.")
		}
	}()

	return a.openWorkspace(ctx, ws)
}
