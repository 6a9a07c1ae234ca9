package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/idolcode/internal/logging"
	"github.com/stretchr/testify/require"
)

func newMetadataRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "idolcode.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

var errStorage = errors.New("disk on fire")

// brokenRepo fails every call.
type brokenRepo struct{}

func (brokenRepo) Get(context.Context, string) ([]byte, error)      { return nil, errStorage }
func (brokenRepo) Set(context.Context, string, []byte) error        { return errStorage }
func (brokenRepo) Delete(context.Context, string) error             { return errStorage }
func (brokenRepo) List(context.Context) (map[string][]byte, error)  { return nil, errStorage }
func (brokenRepo) Clear(context.Context) error                      { return errStorage }
func (brokenRepo) SetMany(context.Context, map[string][]byte) error { return errStorage }
func (brokenRepo) DeleteMany(context.Context, ...string) error      { return errStorage }

var testLogger = logging.Discard()
