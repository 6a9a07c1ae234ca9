package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// DefaultFileName is the name of the file seeded into a new workspace.
const DefaultFileName = "solution"

// DefaultDraftSet is the draft set of a problem opened for the first time.
func DefaultDraftSet() models.DraftSet {
	return models.DraftSet{
		Files: []models.DraftFile{{
			ID:       "1",
			Name:     DefaultFileName,
			Language: models.LangPython,
			Content:  Info(models.LangPython).Template,
		}},
		ActiveFileID: "1",
	}
}

// loadDraftSet restores the draft set for key. Missing, malformed or empty
// records yield the default set; only storage failures are returned.
func loadDraftSet(ctx context.Context, repo drafts.Repository, key models.ProblemKey, logger logging.Logger) (models.DraftSet, error) {
	d, err := repo.Get(ctx, key)
	if err != nil {
		return DefaultDraftSet(), fmt.Errorf("load draft %s: %w", key, err)
	}
	if d == nil {
		return DefaultDraftSet(), nil
	}

	var set models.DraftSet
	if err := json.Unmarshal(d.Payload, &set); err != nil {
		logger.Debug(ctx, "dropping malformed draft", "problem", key.String(), "error", err)
		return DefaultDraftSet(), nil
	}
	if len(set.Files) == 0 {
		return DefaultDraftSet(), nil
	}

	for i := range set.Files {
		if _, ok := languages[set.Files[i].Language]; !ok {
			set.Files[i].Language = models.LangPython
		}
	}
	if indexOf(set.Files, set.ActiveFileID) < 0 {
		set.ActiveFileID = set.Files[0].ID
	}
	return set, nil
}

func indexOf(files []models.DraftFile, id string) int {
	for i, f := range files {
		if f.ID == id {
			return i
		}
	}
	return -1
}
