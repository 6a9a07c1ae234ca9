package mocks

import (
	"context"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of client.Client.
type MockClient struct {
	mock.Mock
}

var _ client.Client = (*MockClient)(nil)

func (m *MockClient) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) SearchCoders(ctx context.Context, query string, limit int) ([]models.Coder, error) {
	args := m.Called(ctx, query, limit)
	coders, _ := args.Get(0).([]models.Coder)
	return coders, args.Error(1)
}

func (m *MockClient) Login(ctx context.Context, handle, password string) (*client.AuthResult, error) {
	args := m.Called(ctx, handle, password)
	res, _ := args.Get(0).(*client.AuthResult)
	return res, args.Error(1)
}

func (m *MockClient) Register(ctx context.Context, handle, password string) (*client.AuthResult, error) {
	args := m.Called(ctx, handle, password)
	res, _ := args.Get(0).(*client.AuthResult)
	return res, args.Error(1)
}

func (m *MockClient) SaveIdol(ctx context.Context, handle, idolHandle string) error {
	args := m.Called(ctx, handle, idolHandle)
	return args.Error(0)
}

func (m *MockClient) Dashboard(ctx context.Context, handle, idolHandle string, refresh bool) (*models.DashboardData, error) {
	args := m.Called(ctx, handle, idolHandle, refresh)
	data, _ := args.Get(0).(*models.DashboardData)
	return data, args.Error(1)
}

func (m *MockClient) SkillComparison(ctx context.Context, handle, idolHandle string, topics []string) (*models.SkillComparison, error) {
	args := m.Called(ctx, handle, idolHandle, topics)
	data, _ := args.Get(0).(*models.SkillComparison)
	return data, args.Error(1)
}

func (m *MockClient) ProblemHistory(ctx context.Context, handle string) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, handle)
	hist, _ := args.Get(0).([]models.HistoryEntry)
	return hist, args.Error(1)
}

func (m *MockClient) RecordHistory(ctx context.Context, entry models.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockClient) CheckSubmissions(ctx context.Context, handle string, problemIDs []string) (map[string]models.SubmissionStatus, error) {
	args := m.Called(ctx, handle, problemIDs)
	subs, _ := args.Get(0).(map[string]models.SubmissionStatus)
	return subs, args.Error(1)
}

func (m *MockClient) Problem(ctx context.Context, contestID, index string) (*models.Problem, error) {
	args := m.Called(ctx, contestID, index)
	p, _ := args.Get(0).(*models.Problem)
	return p, args.Error(1)
}

func (m *MockClient) TestCode(ctx context.Context, req models.TestCodeRequest) (*models.TestReport, error) {
	args := m.Called(ctx, req)
	rep, _ := args.Get(0).(*models.TestReport)
	return rep, args.Error(1)
}

func (m *MockClient) DuckChat(ctx context.Context, req models.DuckChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
