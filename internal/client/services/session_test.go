package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/idolcode/internal/client/client/mocks"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRestore_Empty(t *testing.T) {
	s := NewSessionStore(newMetadataRepo(t), nil, testLogger)
	assert.False(t, s.Loaded())

	s.Restore(context.Background())

	assert.True(t, s.Loaded())
	assert.Nil(t, s.User())
	assert.Nil(t, s.Idol())
	assert.False(t, s.IsAuthenticated())
}

func TestRestore_CorruptIdolKeepsUser(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	require.NoError(t, repo.Set(ctx, common.UserStorageKey, []byte(`{"handle":"alice","country":"LV"}`)))
	require.NoError(t, repo.Set(ctx, common.IdolStorageKey, []byte(`{not json`)))

	s := NewSessionStore(repo, nil, testLogger)
	s.Restore(ctx)

	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().Handle)
	assert.Equal(t, "LV", s.User().Profile["country"])
	assert.Nil(t, s.Idol())

	raw, err := repo.Get(ctx, common.IdolStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw, "corrupt idol record must be deleted")

	raw, err = repo.Get(ctx, common.UserStorageKey)
	require.NoError(t, err)
	assert.NotNil(t, raw, "valid user record must stay")
}

func TestRestore_RecordWithoutHandleIsCorrupt(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	require.NoError(t, repo.Set(ctx, common.UserStorageKey, []byte(`{"rating":1500}`)))
	require.NoError(t, repo.Set(ctx, common.IdolStorageKey, []byte(`{"handle":"tourist","rating":3800}`)))

	s := NewSessionStore(repo, nil, testLogger)
	s.Restore(ctx)

	assert.Nil(t, s.User())
	require.NotNil(t, s.Idol())
	assert.Equal(t, 3800, s.Idol().Rating)
}

func TestRestore_StorageFailureMeansNoState(t *testing.T) {
	s := NewSessionStore(brokenRepo{}, nil, testLogger)
	s.Restore(context.Background())

	assert.True(t, s.Loaded())
	assert.Nil(t, s.User())
	assert.Nil(t, s.Idol())
}

func TestLogin_PersistsUserAndEmbeddedIdol(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	s := NewSessionStore(repo, nil, testLogger)

	require.NoError(t, s.Login(ctx, "alice", map[string]any{"success": true, "idol": "tourist"}))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tourist", s.Idol().Handle)

	// a fresh store sees the same state
	again := NewSessionStore(repo, nil, testLogger)
	again.Restore(ctx)
	assert.Equal(t, "alice", again.User().Handle)
	assert.Equal(t, "tourist", again.Idol().Handle)
}

func TestLogin_WithoutIdolKeepsSelection(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(newMetadataRepo(t), nil, testLogger)

	require.NoError(t, s.SelectIdol(ctx, "Petr", nil))
	require.NoError(t, s.Login(ctx, "alice", map[string]any{"success": true}))

	assert.Equal(t, "Petr", s.Idol().Handle)
}

func TestLogin_StorageFailureLeavesStateUnchanged(t *testing.T) {
	s := NewSessionStore(brokenRepo{}, nil, testLogger)

	err := s.Login(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, errStorage)
	assert.False(t, s.IsAuthenticated())
}

func TestSelectIdol_BeforeLoginDoesNotSync(t *testing.T) {
	gw := &mocks.MockClient{}
	s := NewSessionStore(newMetadataRepo(t), gw, testLogger)

	require.NoError(t, s.SelectIdol(context.Background(), "tourist", map[string]any{"rating": 3800}))
	s.Close()

	assert.Equal(t, "tourist", s.Idol().Handle)
	assert.Nil(t, s.User())
	gw.AssertNotCalled(t, "SaveIdol", mock.Anything, mock.Anything, mock.Anything)
}

func TestSelectIdol_SyncsInBackground(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.MockClient{}
	gw.On("SaveIdol", mock.Anything, "alice", "tourist").Return(nil).Once()

	s := NewSessionStore(newMetadataRepo(t), gw, testLogger)
	require.NoError(t, s.Login(ctx, "alice", nil))
	require.NoError(t, s.SelectIdol(ctx, "tourist", nil))
	s.Close()

	gw.AssertExpectations(t)
}

func TestSelectIdol_SyncFailureKeepsLocalChoice(t *testing.T) {
	ctx := context.Background()
	gw := &mocks.MockClient{}
	gw.On("SaveIdol", mock.Anything, "alice", "tourist").Return(errors.New("502")).Once()

	repo := newMetadataRepo(t)
	s := NewSessionStore(repo, gw, testLogger)
	require.NoError(t, s.Login(ctx, "alice", nil))
	require.NoError(t, s.SelectIdol(ctx, "tourist", nil))
	s.Close()

	assert.Equal(t, "tourist", s.Idol().Handle)
	raw, err := repo.Get(ctx, common.IdolStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"handle":"tourist"}`, string(raw))
	gw.AssertExpectations(t)
}

func TestSelectIdolThenLogout_RemovesBothKeys(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	s := NewSessionStore(repo, nil, testLogger)

	require.NoError(t, s.Login(ctx, "alice", nil))
	require.NoError(t, s.SelectIdol(ctx, "tourist", nil))
	require.NoError(t, s.Logout(ctx))

	assert.Nil(t, s.User())
	assert.Nil(t, s.Idol())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, common.UserStorageKey)
	assert.NotContains(t, all, common.IdolStorageKey)
}

func TestLogout_StorageFailureStillClearsMemory(t *testing.T) {
	s := NewSessionStore(brokenRepo{}, nil, testLogger)
	s.user = &models.User{Handle: "alice"}
	s.idol = &models.Idol{Handle: "tourist"}

	err := s.Logout(context.Background())
	assert.ErrorIs(t, err, errStorage)
	assert.Nil(t, s.User())
	assert.Nil(t, s.Idol())
}

func TestReset_WipesEveryKey(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	s := NewSessionStore(repo, nil, testLogger)

	require.NoError(t, s.Login(ctx, "alice", nil))
	require.NoError(t, s.SelectIdol(ctx, "tourist", nil))
	require.NoError(t, repo.Set(ctx, "unrelated", []byte(`1`)))
	require.NoError(t, s.Reset(ctx))

	assert.Nil(t, s.User())
	assert.Nil(t, s.Idol())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReset_StorageFailure(t *testing.T) {
	s := NewSessionStore(brokenRepo{}, nil, testLogger)
	s.user = &models.User{Handle: "alice"}

	err := s.Reset(context.Background())
	assert.ErrorIs(t, err, errStorage)
	assert.Nil(t, s.User())
}
