package drafts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
)

// Repository stores one draft per problem.
type Repository interface {
	// Get returns (nil, nil) when no draft exists for key.
	Get(ctx context.Context, key models.ProblemKey) (*models.Draft, error)

	// Save upserts the draft for key.
	Save(ctx context.Context, key models.ProblemKey, payload []byte, updatedAt time.Time) error

	// Delete removes the draft; deleting a missing draft is not an error.
	Delete(ctx context.Context, key models.ProblemKey) error

	// List returns all drafts, most recently updated first.
	List(ctx context.Context) ([]models.Draft, error)
}
