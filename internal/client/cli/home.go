package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/services"
)

// confirm is a test seam for Confirm.
var confirm = Confirm

// Search runs one coder lookup and lists the suggestions.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		a.fail("Please enter a coder username")
		return nil
	}

	coders, err := a.searcher.Search(ctx, query)
	if err != nil {
		a.report(err, "Search failed")
		return err
	}
	a.setSuggestions(coders)
	a.println(renderCoders(coders))
	return nil
}

// Type feeds text to the search-as-you-type debouncer one keystroke at a
// time, the way a search box would, and shows the suggestions for the
// final text.
func (a *App) Type(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	final := strings.TrimSpace(text)

	a.drainResults()
	runes := []rune(text)
	for i := range runes {
		a.searcher.Type(string(runes[:i+1]))
	}
	if len(runes) == 0 {
		a.searcher.Type("")
	}

	timeout := time.NewTimer(a.cfg.SearchDebounce + a.cfg.RequestTimeout)
	defer timeout.Stop()

	for {
		select {
		case res := <-a.results:
			if res.Query != final {
				continue
			}
			switch {
			case res.Cleared:
				a.println(hintStyle.Render(fmt.Sprintf("Type at least %d characters to search", a.cfg.SearchMinLength)))
			case res.Err != nil:
				a.report(res.Err, "Search failed")
				return res.Err
			default:
				a.println(renderCoders(res.Coders))
			}
			return nil
		case <-timeout.C:
			a.notice("Search timed out.")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *App) onSearchResult(res services.SearchResult) {
	switch {
	case res.Cleared:
		a.setSuggestions(nil)
	case res.Err == nil:
		a.setSuggestions(res.Coders)
	}
	select {
	case a.results <- res:
	default:
	}
}

func (a *App) drainResults() {
	for {
		select {
		case <-a.results:
		default:
			return
		}
	}
}

func (a *App) setSuggestions(coders []models.Coder) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suggestions = coders
}

// findCoder resolves a pick argument: a 1-based suggestion number, a
// suggested handle, or any other handle as is.
func (a *App) findCoder(ref string) models.Coder {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.suggestions) {
		return a.suggestions[n-1]
	}
	for _, c := range a.suggestions {
		if strings.EqualFold(c.Handle, ref) {
			return c
		}
	}
	return models.Coder{Handle: ref}
}

// Pick confirms and selects a coding idol, then heads for the dashboard,
// through login when nobody is signed in.
func (a *App) Pick(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.fail("Usage: pick <n|handle>")
		return nil
	}

	coder := a.findCoder(args[0])
	ok, err := confirm(a.reader, fmt.Sprintf("Select %s (%s) as your coding idol?", coder.Handle, tierLabel(coder.Rating)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println(hintStyle.Render("Selection cancelled."))
		return nil
	}

	if err := a.session.SelectIdol(ctx, coder.Handle, coder.Info()); err != nil {
		a.report(err, "Could not save your idol")
		return err
	}
	a.dashboard = nil
	a.success(fmt.Sprintf("%s selected as your coding idol!", coder.Handle))

	return a.navigate(ctx, Destination{Screen: ScreenDashboard, Args: []string{coder.Handle}})
}
