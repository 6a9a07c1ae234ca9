package cli

import (
	"context"
	"fmt"
)

// Drafts lists the problems with saved workspace drafts, newest first.
func (a *App) Drafts(ctx context.Context) error {
	ds, err := a.drafts.List(ctx)
	if err != nil {
		a.report(err, "Failed to read saved drafts")
		return err
	}
	a.println(renderDrafts(ds, a.now()))
	return nil
}

// Reset asks for confirmation, then signs out and wipes the local store
// together with every saved draft.
func (a *App) Reset(ctx context.Context) error {
	ok, err := confirm(a.reader, "Delete the saved session and all drafts on this machine?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println(hintStyle.Render("Reset cancelled."))
		return nil
	}

	a.dashboard = nil
	a.returnTo = nil
	if th, ok := a.client.(tokenHolder); ok {
		th.SetToken("")
	}
	if err := a.session.Reset(ctx); err != nil {
		a.report(err, "Could not clear local data")
		return err
	}

	ds, err := a.drafts.List(ctx)
	if err != nil {
		a.report(err, "Could not clear saved drafts")
		return err
	}
	removed := 0
	for _, d := range ds {
		if err := a.drafts.Delete(ctx, d.Key); err != nil {
			a.logger.Warn(ctx, "failed to delete draft", "problem", d.Key.String(), "error", err)
			continue
		}
		removed++
	}
	a.success(fmt.Sprintf("Local data cleared, %d draft(s) removed", removed))
	return nil
}
