package cli

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/services"
	"github.com/dmitrijs2005/idolcode/internal/client/workspace"
	"github.com/dmitrijs2005/idolcode/internal/latex"
	"github.com/dmitrijs2005/idolcode/internal/timex"
)

const (
	emptyRecommendations = "No recommendations available yet. Solve more problems to get personalized suggestions!"
	emptyHistory         = "No problems attempted yet"
	emptySkills          = "No skill data available."
	emptyCoders          = "No coders found"
	emptyDrafts          = "No saved drafts"

	// resultFieldWidth truncates test inputs and outputs.
	resultFieldWidth = 80
)

// tierLabel renders a rating coloured by its rank band, e.g. "Expert 1750".
func tierLabel(rating int) string {
	tier := models.TierFor(rating)
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color)).Bold(true)
	if rating <= 0 {
		return s.Render(tier.Name)
	}
	return s.Render(fmt.Sprintf("%s %d", tier.Name, rating))
}

func ratingValue(rating int) string {
	if rating <= 0 {
		return "—"
	}
	tier := models.TierFor(rating)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color)).Render(fmt.Sprint(rating))
}

func difficultyBadge(d models.Difficulty) string {
	c, ok := difficultyColors[string(d)]
	if !ok {
		return ""
	}
	return badgeStyle.Foreground(lipgloss.Color(c)).Render(string(d))
}

// gapSign formats a user-minus-idol difference with an explicit sign.
func gapSign(n int) string {
	switch {
	case n > 0:
		return successStyle.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return errorStyle.Render(fmt.Sprintf("%d", n))
	default:
		return dimStyle.Render("0")
	}
}

func statusBadge(s models.HistoryStatus) string {
	switch s {
	case models.StatusSolved:
		return successStyle.Render("✓ Accepted")
	case models.StatusFailed:
		return errorStyle.Render("✗ Wrong Answer")
	default:
		return warnStyle.Render("◷ Attempted")
	}
}

func renderCoders(coders []models.Coder) string {
	if len(coders) == 0 {
		return hintStyle.Render(emptyCoders)
	}
	var b strings.Builder
	for i, c := range coders {
		fmt.Fprintf(&b, "%2d. %-20s %s\n", i+1, c.Handle, tierLabel(c.Rating))
	}
	b.WriteString(hintStyle.Render("Use 'pick <n>' to choose your coding idol."))
	return b.String()
}

func renderComparison(c *models.Comparison, idolHandle string) string {
	if c == nil {
		return hintStyle.Render("Comparison unavailable.")
	}

	rows := []struct {
		label      string
		user, idol int
		rating     bool
	}{
		{"Rating", c.User.Rating, c.Idol.Rating, true},
		{"Max Rating", c.User.MaxRating, c.Idol.MaxRating, true},
		{"Problems Solved", c.User.ProblemsSolved, c.Idol.ProblemsSolved, false},
		{"Contest Wins", c.User.ContestWins, c.Idol.ContestWins, false},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %10s %10s %8s\n", "", "You", idolHandle, "Gap")
	for _, r := range rows {
		user, idol := fmt.Sprint(r.user), fmt.Sprint(r.idol)
		if r.rating {
			user, idol = ratingValue(r.user), ratingValue(r.idol)
		}
		fmt.Fprintf(&b, "%-16s %10s %10s %8s\n", r.label, user, idol, gapSign(r.user-r.idol))
	}
	fmt.Fprintf(&b, "\nProgress towards %s: %.0f%%", idolHandle, c.ProgressPercent)
	if c.UserAhead {
		b.WriteString("\n" + successStyle.Render(fmt.Sprintf("You've surpassed %s! Keep pushing forward!", idolHandle)))
	}
	return cardStyle.Render(b.String())
}

func renderRecommendations(set *models.RecommendationSet) string {
	if set == nil || len(set.Recommendations) == 0 {
		return hintStyle.Render(emptyRecommendations)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Your roadmap") + "\n")
	if set.Description != "" {
		b.WriteString(dimStyle.Render(set.Description) + "\n")
	}
	for i, r := range set.Recommendations {
		fmt.Fprintf(&b, "%2d. %s%s %s", i+1, r.ContestID, r.Index, r.Name)
		if badge := difficultyBadge(r.Difficulty); badge != "" {
			b.WriteString(" " + badge)
		}
		if r.Rating > 0 {
			b.WriteString(" " + ratingValue(r.Rating))
		}
		b.WriteString("\n")
		if len(r.Tags) > 0 {
			b.WriteString("    " + dimStyle.Render(strings.Join(r.Tags, ", ")) + "\n")
		}
		if r.Reason != "" {
			b.WriteString("    " + hintStyle.Render(r.Reason) + "\n")
		}
	}
	b.WriteString(hintStyle.Render("Use 'solve <n>' to open a problem, 'check' after submitting."))
	return b.String()
}

func renderSkills(s *models.SkillComparison, focus []string) string {
	if s == nil || len(s.Stats) == 0 {
		return hintStyle.Render(emptySkills)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Skill map") + "\n")
	fmt.Fprintf(&b, "%-28s %6s %6s %6s\n", "Topic", "You", "Idol", "Gap")
	for _, st := range s.Stats {
		fmt.Fprintf(&b, "%-28s %6d %6d %6s\n", st.Topic, st.User, st.Idol, gapSign(-st.Gap))
	}

	title := "Focus areas"
	if len(focus) > 0 {
		title = "Focus areas (custom)"
	}
	b.WriteString("\n" + headingStyle.Render(title) + "\n")
	if len(s.WeakestTopics) == 0 {
		b.WriteString(hintStyle.Render("No focus areas available yet."))
		return b.String()
	}
	for _, w := range s.WeakestTopics {
		fmt.Fprintf(&b, "• %s (%d behind)\n", w.Topic, w.Gap)
		if len(w.Problems) == 0 {
			b.WriteString("    " + hintStyle.Render("No matching problems found for this topic.") + "\n")
		}
		for _, p := range w.Problems {
			fmt.Fprintf(&b, "    %s%s %s %s\n", p.ContestID, p.Index, p.Name, ratingValue(p.Rating))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHistory(entries []models.HistoryEntry, now time.Time) string {
	if len(entries) == 0 {
		return hintStyle.Render(emptyHistory)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Problem history") + "\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%2d. %s%s %s %s", i+1, e.ContestID, e.Index, e.Name, statusBadge(e.Status))
		if ago := timex.Ago(e.AttemptedAt.Time, now); ago != "" {
			b.WriteString(" " + dimStyle.Render(ago))
		}
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("Use 'retry <n>' to reopen a problem."))
	return b.String()
}

func renderDrafts(ds []models.Draft, now time.Time) string {
	if len(ds) == 0 {
		return hintStyle.Render(emptyDrafts)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Saved drafts") + "\n")
	for i, d := range ds {
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, d.Key, dimStyle.Render(timex.Ago(d.UpdatedAt, now)))
	}
	b.WriteString(hintStyle.Render("Use 'open <contest> <index>' to continue."))
	return b.String()
}

func renderDashboard(snap services.DashboardSnapshot, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", snap.UserHandle, snap.IdolHandle)) + "\n\n")

	switch snap.Overview.State {
	case services.SectionReady:
		b.WriteString(renderComparison(snap.Overview.Data.Comparison, snap.IdolHandle) + "\n\n")
		b.WriteString(renderRecommendations(snap.Overview.Data.Recommendations) + "\n\n")
	case services.SectionFailed:
		b.WriteString(errorStyle.Render("Error loading dashboard data") + "\n\n")
	default:
		b.WriteString(dimStyle.Render("Loading…") + "\n\n")
	}

	switch snap.Skills.State {
	case services.SectionReady:
		b.WriteString(renderSkills(snap.Skills.Data, snap.Focus) + "\n\n")
	case services.SectionFailed:
		b.WriteString(errorStyle.Render("Failed to load skill comparison data.") + "\n\n")
	}

	switch snap.History.State {
	case services.SectionReady:
		b.WriteString(renderHistory(snap.History.Data, now))
	case services.SectionFailed:
		b.WriteString(errorStyle.Render("Failed to load problem history."))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderProblem(p *models.Problem) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s%s. %s", p.ContestID, p.Index, p.Name)) + "\n")

	var meta []string
	if p.Rating > 0 {
		meta = append(meta, ratingValue(p.Rating))
	}
	if p.TimeLimit != "" {
		meta = append(meta, "time limit "+p.TimeLimit)
	}
	if p.MemoryLimit != "" {
		meta = append(meta, "memory limit "+p.MemoryLimit)
	}
	if len(meta) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(meta, " · ")) + "\n")
	}
	if len(p.Tags) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(p.Tags, ", ")) + "\n")
	}

	section := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		b.WriteString("\n" + headingStyle.Render(title) + "\n" + latex.RenderText(strings.TrimSpace(body)) + "\n")
	}
	section("Statement", p.ProblemStatement)
	section("Input", p.InputSpecification)
	section("Output", p.OutputSpecification)

	for i, ex := range p.Examples {
		b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Example %d", i+1)) + "\n")
		b.WriteString(dimStyle.Render("input") + "\n" + ex.Input)
		if !strings.HasSuffix(ex.Input, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("output") + "\n" + ex.Output)
		if !strings.HasSuffix(ex.Output, "\n") {
			b.WriteString("\n")
		}
	}
	if strings.TrimSpace(p.Note) != "" {
		b.WriteString("\n" + headingStyle.Render("Note") + "\n" + latex.RenderText(strings.TrimSpace(p.Note)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func renderTestRun(run workspace.TestRun) string {
	var b strings.Builder
	switch {
	case run.State == workspace.TestRunning:
		return dimStyle.Render("Running tests…")
	case run.State == workspace.TestIdle:
		return hintStyle.Render("No test run yet. Use 'test' to run the samples.")
	case run.Report == nil:
		return errorStyle.Render("Error: " + run.Detail)
	}

	for _, r := range run.Report.Results {
		if r.Passed {
			fmt.Fprintf(&b, "Test %d: %s\n", r.TestCase, successStyle.Render("✓ PASSED"))
		} else {
			fmt.Fprintf(&b, "Test %d: %s\n", r.TestCase, errorStyle.Render("✗ WRONG ANSWER"))
		}
		fmt.Fprintf(&b, "  Input:    %s\n", truncate(r.Input, resultFieldWidth))
		fmt.Fprintf(&b, "  Expected: %s\n", truncate(r.Expected, resultFieldWidth))
		fmt.Fprintf(&b, "  Got:      %s\n", truncate(r.Actual, resultFieldWidth))
		if r.Error != "" {
			fmt.Fprintf(&b, "  Error:    %s\n", truncate(r.Error, resultFieldWidth))
		}
	}
	if run.State == workspace.TestPassed {
		b.WriteString(successStyle.Render("ALL TESTS PASSED!"))
	} else {
		b.WriteString(errorStyle.Render("SOME TESTS FAILED"))
	}
	return b.String()
}

func renderFiles(files []models.DraftFile, activeID string) string {
	var b strings.Builder
	for i, f := range files {
		marker := " "
		if f.ID == activeID {
			marker = "*"
		}
		info := workspace.Info(f.Language)
		fmt.Fprintf(&b, "%s %d. %s%s  %s\n", marker, i+1, f.Name, info.Extension, dimStyle.Render(info.Name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderChat(msgs []models.ChatMessage) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.Role == models.RoleUser {
			b.WriteString(headingStyle.Render("you") + "\n" + m.Content + "\n\n")
			continue
		}
		b.WriteString(titleStyle.Render("duck") + "\n" + renderMarkdown(m.Content) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func modeBadge(m workspace.Mode) string {
	if m == workspace.ModeRival {
		return badgeStyle.Foreground(colorRival).Render("Rival")
	}
	return badgeStyle.Foreground(colorCoach).Render("Coach")
}

func renderTimer(state workspace.TimerState, left time.Duration) string {
	clock := timex.Clock(left)
	switch state {
	case workspace.TimerRunning:
		return warnStyle.Render("⏱ " + clock)
	case workspace.TimerPaused:
		return dimStyle.Render("⏸ " + clock)
	case workspace.TimerExpired:
		return errorStyle.Render(workspace.TimeUpMessage)
	default:
		return dimStyle.Render(clock)
	}
}
