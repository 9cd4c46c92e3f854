// internal/service/mocks/service_mock.go
package mocks

import (
	"context"

	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// ================== MOCK PROGRESS SERVICE ==================

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) AddPoints(ctx context.Context, userID string, input *models.AddPointsInput) (*models.ProgressUpdate, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressUpdate), args.Error(1)
}

func (m *MockProgressService) CompleteAction(ctx context.Context, userID, actionID string) (*models.ProgressUpdate, error) {
	args := m.Called(ctx, userID, actionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressUpdate), args.Error(1)
}

func (m *MockProgressService) CompleteAssessment(ctx context.Context, userID string) (*models.ProgressUpdate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressUpdate), args.Error(1)
}

func (m *MockProgressService) ShareContent(ctx context.Context, userID string) (*models.ProgressUpdate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressUpdate), args.Error(1)
}

func (m *MockProgressService) ResetProgress(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProgressService) GetAchievements(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AchievementStatus), args.Error(1)
}

func (m *MockProgressService) GetPointHistory(ctx context.Context, userID string, page, limit int) ([]models.PointTransaction, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.PointTransaction), args.Int(1), args.Error(2)
}

// NewMockProgressService creates a new instance of MockProgressService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockProgressService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProgressService {
	mock := &MockProgressService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// ================== MOCK CHALLENGE SERVICE ==================

type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) GetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeState), args.Error(1)
}

func (m *MockChallengeService) StartChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeState), args.Error(1)
}

func (m *MockChallengeService) CompleteTask(ctx context.Context, userID, taskID string) (*models.ChallengeState, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeState), args.Error(1)
}

func (m *MockChallengeService) ResetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeState), args.Error(1)
}

func (m *MockChallengeService) CurrentDayTasks(ctx context.Context, userID string) ([]models.DailyTask, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyTask), args.Error(1)
}

// NewMockChallengeService creates a new instance of MockChallengeService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChallengeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChallengeService {
	mock := &MockChallengeService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
