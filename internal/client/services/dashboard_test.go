package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/client/mocks"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bundle(recs ...models.Recommendation) *models.DashboardData {
	return &models.DashboardData{
		Comparison:      &models.Comparison{ProgressPercent: 42},
		Recommendations: &models.RecommendationSet{Recommendations: recs, Description: "plan"},
	}
}

var (
	recA = models.Recommendation{ProblemID: "1A", ContestID: "1", Index: "A", Name: "Theatre Square", Difficulty: models.DifficultyEasy}
	recB = models.Recommendation{ProblemID: "2B", ContestID: "2", Index: "B", Name: "The least round way", Difficulty: models.DifficultyHard}
)

func TestDashboard_LoadSectionsIndependently(t *testing.T) {
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", false).Return(bundle(recA), nil)
	c.On("SkillComparison", mock.Anything, "alice", "tourist", []string(nil)).Return(nil, client.ErrUnavailable)
	c.On("ProblemHistory", mock.Anything, "alice").Return([]models.HistoryEntry{{Name: "x", Status: models.StatusFailed}}, nil)

	d := NewDashboard(c, "alice", "tourist", testLogger)
	snap := d.Load(context.Background())

	assert.Equal(t, SectionReady, snap.Overview.State)
	assert.Equal(t, SectionFailed, snap.Skills.State)
	assert.ErrorIs(t, snap.Skills.Err, client.ErrUnavailable)
	assert.Equal(t, SectionReady, snap.History.State)
	assert.Len(t, snap.History.Data, 1)
	assert.Equal(t, []models.Recommendation{recA}, snap.Recommendations())

	r, ok := d.Recommendation(1)
	assert.True(t, ok)
	assert.Equal(t, recA, r)
	_, ok = d.Recommendation(2)
	assert.False(t, ok)
	_, ok = d.Attempt(1)
	assert.True(t, ok)
}

func TestDashboard_LoadRunsConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(3)
	release := make(chan struct{})
	wait := func(mock.Arguments) {
		started.Done()
		<-release
	}

	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", false).Run(wait).Return(bundle(), nil)
	c.On("SkillComparison", mock.Anything, "alice", "tourist", mock.Anything).Run(wait).Return(&models.SkillComparison{}, nil)
	c.On("ProblemHistory", mock.Anything, "alice").Run(wait).Return([]models.HistoryEntry{}, nil)

	d := NewDashboard(c, "alice", "tourist", testLogger)
	done := make(chan DashboardSnapshot)
	go func() { done <- d.Load(context.Background()) }()

	allStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(allStarted)
	}()
	select {
	case <-allStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("sections were not requested concurrently")
	}
	close(release)

	snap := <-done
	assert.Equal(t, SectionReady, snap.Skills.State)
}

func TestDashboard_RefreshBusy(t *testing.T) {
	release := make(chan struct{})
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).
		Run(func(mock.Arguments) { <-release }).
		Return(bundle(recA), nil).Once()

	d := NewDashboard(c, "alice", "tourist", testLogger)
	errCh := make(chan error)
	go func() { errCh <- d.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return d.refreshing.Load() }, time.Second, time.Millisecond)
	assert.ErrorIs(t, d.Refresh(context.Background()), common.ErrBusy)

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, SectionReady, d.Snapshot().Overview.State)
	c.AssertExpectations(t)
}

func TestDashboard_RefreshFailureKeepsPreviousData(t *testing.T) {
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", false).Return(bundle(recA), nil).Once()
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).Return(nil, client.ErrUnavailable).Once()
	c.On("SkillComparison", mock.Anything, "alice", "tourist", mock.Anything).Return(&models.SkillComparison{}, nil)
	c.On("ProblemHistory", mock.Anything, "alice").Return([]models.HistoryEntry{}, nil)

	d := NewDashboard(c, "alice", "tourist", testLogger)
	d.Load(context.Background())

	err := d.Refresh(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)

	snap := d.Snapshot()
	assert.Equal(t, SectionFailed, snap.Overview.State)
	assert.Equal(t, []models.Recommendation{recA}, snap.Recommendations())
}

func TestDashboard_CheckSubmissions_NothingSolved(t *testing.T) {
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).Return(bundle(recA, recB), nil).Once()
	c.On("CheckSubmissions", mock.Anything, "alice", []string{"1A", "2B"}).
		Return(map[string]models.SubmissionStatus{"1A": {Solved: false}}, nil).Once()

	d := NewDashboard(c, "alice", "tourist", testLogger)
	require.NoError(t, d.Refresh(context.Background()))

	res, err := d.CheckSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Solved)
	c.AssertNotCalled(t, "RecordHistory", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestDashboard_CheckSubmissions_RecordsAndRefreshes(t *testing.T) {
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).Return(bundle(recA, recB), nil).Twice()
	c.On("CheckSubmissions", mock.Anything, "alice", []string{"1A", "2B"}).
		Return(map[string]models.SubmissionStatus{"1A": {Solved: true}, "2B": {Solved: true}}, nil).Once()
	c.On("RecordHistory", mock.Anything, models.SolvedEntry("alice", "tourist", recA)).Return(nil).Once()
	c.On("RecordHistory", mock.Anything, models.SolvedEntry("alice", "tourist", recB)).Return(errors.New("boom")).Once()

	d := NewDashboard(c, "alice", "tourist", testLogger)
	require.NoError(t, d.Refresh(context.Background()))

	res, err := d.CheckSubmissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Recommendation{recA, recB}, res.Solved)
	assert.Equal(t, 1, res.Recorded)
	c.AssertExpectations(t)
}

func TestDashboard_CheckSubmissions_DuringRefresh(t *testing.T) {
	release := make(chan struct{})
	c := &mocks.MockClient{}
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).Return(bundle(recA), nil).Once()
	c.On("Dashboard", mock.Anything, "alice", "tourist", true).
		Run(func(mock.Arguments) { <-release }).
		Return(bundle(recA), nil).Once()
	c.On("CheckSubmissions", mock.Anything, "alice", []string{"1A"}).
		Return(map[string]models.SubmissionStatus{"1A": {Solved: true}}, nil).Once()
	c.On("RecordHistory", mock.Anything, models.SolvedEntry("alice", "tourist", recA)).Return(nil).Once()

	d := NewDashboard(c, "alice", "tourist", testLogger)
	require.NoError(t, d.Refresh(context.Background()))

	errCh := make(chan error)
	go func() { errCh <- d.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return d.refreshing.Load() }, time.Second, time.Millisecond)

	res, err := d.CheckSubmissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Recorded)

	assert.True(t, d.refreshing.Load())
	assert.ErrorIs(t, d.Refresh(context.Background()), common.ErrBusy)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, d.refreshing.Load())
	c.AssertExpectations(t)
}

func TestDashboard_CheckSubmissions_NoRecommendations(t *testing.T) {
	c := &mocks.MockClient{}
	d := NewDashboard(c, "alice", "tourist", testLogger)

	res, err := d.CheckSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Solved)
	c.AssertNotCalled(t, "CheckSubmissions", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateFocus(t *testing.T) {
	got, err := ValidateFocus(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ValidateFocus([]string{" dp", "graphs ", "greedy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dp", "graphs", "greedy"}, got)

	for _, bad := range [][]string{{"dp"}, {"dp", "graphs"}, {"dp", "DP", "graphs"}, {"a", "b", "c", "d"}} {
		_, err := ValidateFocus(bad)
		assert.ErrorIs(t, err, common.ErrValidation, "%v", bad)
	}
}

func TestDashboard_SetFocus(t *testing.T) {
	topics := []string{"dp", "graphs", "greedy"}
	c := &mocks.MockClient{}
	c.On("SkillComparison", mock.Anything, "alice", "tourist", topics).
		Return(&models.SkillComparison{Stats: []models.TopicStat{{Topic: "dp"}}}, nil).Once()

	d := NewDashboard(c, "alice", "tourist", testLogger)
	require.NoError(t, d.SetFocus(context.Background(), topics))
	assert.Equal(t, topics, d.Snapshot().Focus)

	assert.ErrorIs(t, d.SetFocus(context.Background(), []string{"dp"}), common.ErrValidation)
	c.AssertExpectations(t)
}
