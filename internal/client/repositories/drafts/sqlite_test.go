package drafts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE drafts (
  contest_id    TEXT NOT NULL,
  problem_index TEXT NOT NULL,
  payload       BLOB NOT NULL,
  updated_at    TIMESTAMP NOT NULL,
  PRIMARY KEY (contest_id, problem_index)
);`)
	require.NoError(t, err)
	return db
}

var key = models.ProblemKey{ContestID: "1850", Index: "A"}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	d, err := r.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestSave_InsertThenUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	t1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.Save(ctx, key, []byte(`{"files":[]}`), t1))

	t2 := t1.Add(time.Minute)
	require.NoError(t, r.Save(ctx, key, []byte(`{"files":[{"id":"1"}]}`), t2))

	d, err := r.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, key, d.Key)
	assert.JSONEq(t, `{"files":[{"id":"1"}]}`, string(d.Payload))
	assert.True(t, d.UpdatedAt.Equal(t2), "updated_at = %v", d.UpdatedAt)
}

func TestSave_KeysAreIndependent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	other := models.ProblemKey{ContestID: "1850", Index: "B"}

	require.NoError(t, r.Save(ctx, key, []byte("a"), time.Now()))
	require.NoError(t, r.Save(ctx, other, []byte("b"), time.Now()))

	d, err := r.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), d.Payload)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, key, []byte("a"), time.Now()))
	require.NoError(t, r.Delete(ctx, key))
	require.NoError(t, r.Delete(ctx, key))

	d, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestList_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Save(ctx, models.ProblemKey{ContestID: "1", Index: "A"}, []byte("x"), base))
	require.NoError(t, r.Save(ctx, models.ProblemKey{ContestID: "2", Index: "B"}, []byte("y"), base.Add(time.Hour)))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2B", list[0].Key.String())
	assert.Equal(t, "1A", list[1].Key.String())
}

func TestErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, key)
	require.ErrorContains(t, err, "failed to get draft 1850A")

	err = r.Save(ctx, key, []byte("x"), time.Now())
	require.ErrorContains(t, err, "failed to save draft 1850A")

	err = r.Delete(ctx, key)
	require.ErrorContains(t, err, "failed to delete draft 1850A")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list drafts")
}
