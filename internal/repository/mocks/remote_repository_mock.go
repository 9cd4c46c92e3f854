// internal/repository/mocks/remote_repository_mock.go
package mocks

import (
	"context"

	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/stretchr/testify/mock"
)

// ================== MOCK REMOTE PROGRESS REPOSITORY ==================

type MockRemoteProgressRepository struct {
	mock.Mock
}

func (m *MockRemoteProgressRepository) GetUserProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockRemoteProgressRepository) UpsertUserProgress(ctx context.Context, progress *models.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// NewMockRemoteProgressRepository creates a new instance of MockRemoteProgressRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRemoteProgressRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteProgressRepository {
	mock := &MockRemoteProgressRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// ================== MOCK REMOTE CHALLENGE REPOSITORY ==================

type MockRemoteChallengeRepository struct {
	mock.Mock
}

func (m *MockRemoteChallengeRepository) GetChallenge(ctx context.Context, userID string) (*models.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockRemoteChallengeRepository) UpsertChallenge(ctx context.Context, challenge *models.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockRemoteChallengeRepository) GetDailyTasks(ctx context.Context, challengeID string) ([]models.DailyTask, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyTask), args.Error(1)
}

func (m *MockRemoteChallengeRepository) UpsertDailyTasks(ctx context.Context, tasks []models.DailyTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockRemoteChallengeRepository) DeleteChallenge(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// NewMockRemoteChallengeRepository creates a new instance of MockRemoteChallengeRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRemoteChallengeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteChallengeRepository {
	mock := &MockRemoteChallengeRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// ================== MOCK REMOTE ACHIEVEMENT REPOSITORY ==================

type MockRemoteAchievementRepository struct {
	mock.Mock
}

func (m *MockRemoteAchievementRepository) GetUnlocks(ctx context.Context, userID string) ([]models.AchievementUnlock, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AchievementUnlock), args.Error(1)
}

func (m *MockRemoteAchievementRepository) UpsertUnlocks(ctx context.Context, unlocks []models.AchievementUnlock) error {
	args := m.Called(ctx, unlocks)
	return args.Error(0)
}

func (m *MockRemoteAchievementRepository) DeleteUnlocks(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// NewMockRemoteAchievementRepository creates a new instance of MockRemoteAchievementRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRemoteAchievementRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteAchievementRepository {
	mock := &MockRemoteAchievementRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
