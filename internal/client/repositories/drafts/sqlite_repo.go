package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key models.ProblemKey) (*models.Draft, error) {
	query := `select payload, updated_at from drafts where contest_id=? and problem_index=?`

	d := &models.Draft{Key: key}
	err := r.db.QueryRowContext(ctx, query, key.ContestID, key.Index).Scan(&d.Payload, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", key, err)
	}
	return d, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, key models.ProblemKey, payload []byte, updatedAt time.Time) error {
	query := `INSERT INTO drafts (contest_id, problem_index, payload, updated_at)
			values (?, ?, ?, ?)
			ON CONFLICT(contest_id, problem_index) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key.ContestID, key.Index, payload, updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key models.ProblemKey) error {
	_, err := r.db.ExecContext(ctx, `delete from drafts where contest_id=? and problem_index=?`, key.ContestID, key.Index)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Draft, error) {
	query := `select contest_id, problem_index, payload, updated_at from drafts order by updated_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var result []models.Draft
	for rows.Next() {
		var d models.Draft
		if err := rows.Scan(&d.Key.ContestID, &d.Key.Index, &d.Payload, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft rows: %w", err)
	}
	return result, nil
}
