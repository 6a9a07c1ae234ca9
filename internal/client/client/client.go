package client

import (
	"context"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
)

// Client is the backend contract. Every call is a single request; there is
// no caching and no retrying at this level.
type Client interface {
	Health(ctx context.Context) error
	SearchCoders(ctx context.Context, query string, limit int) ([]models.Coder, error)

	Login(ctx context.Context, handle, password string) (*AuthResult, error)
	Register(ctx context.Context, handle, password string) (*AuthResult, error)
	SaveIdol(ctx context.Context, handle, idolHandle string) error

	Dashboard(ctx context.Context, handle, idolHandle string, refresh bool) (*models.DashboardData, error)
	SkillComparison(ctx context.Context, handle, idolHandle string, topics []string) (*models.SkillComparison, error)
	ProblemHistory(ctx context.Context, handle string) ([]models.HistoryEntry, error)
	RecordHistory(ctx context.Context, entry models.HistoryEntry) error
	CheckSubmissions(ctx context.Context, handle string, problemIDs []string) (map[string]models.SubmissionStatus, error)

	Problem(ctx context.Context, contestID, index string) (*models.Problem, error)
	TestCode(ctx context.Context, req models.TestCodeRequest) (*models.TestReport, error)
	DuckChat(ctx context.Context, req models.DuckChatRequest) (string, error)
}

// AuthResult is a successful login or registration. Profile holds the full
// response body, including fields this client does not interpret.
type AuthResult struct {
	Handle  string
	Profile map[string]any
}
