// internal/service/sync_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/privguard/progress-engine-be/internal/database"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/repository"
	repoMocks "github.com/privguard/progress-engine-be/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSyncFixture(t *testing.T) (repository.LocalStateRepository, *repoMocks.MockRemoteProgressRepository, *repoMocks.MockRemoteChallengeRepository, *repoMocks.MockRemoteAchievementRepository) {
	t.Helper()
	db, err := database.NewLocalDB(":memory:")
	require.NoError(t, err)
	localRepo := repository.NewLocalStateRepository(db)
	return localRepo,
		repoMocks.NewMockRemoteProgressRepository(t),
		repoMocks.NewMockRemoteChallengeRepository(t),
		repoMocks.NewMockRemoteAchievementRepository(t)
}

func TestSyncService_DisabledMode(t *testing.T) {
	db, err := database.NewLocalDB(":memory:")
	require.NoError(t, err)
	localRepo := repository.NewLocalStateRepository(db)

	// Tanpa repo remote semua operasi jadi no-op yang aman.
	svc := NewSyncService(localRepo, nil, nil, nil)
	svc.EnsureHydrated(context.Background(), "user-1")
	svc.EnqueuePush("user-1")
	svc.Close()
}

func TestSyncService_HydratesOncePerUser(t *testing.T) {
	localRepo, remoteProgress, remoteChallenge, remoteUnlocks := newSyncFixture(t)
	ctx := context.Background()

	now := time.Date(2025, time.April, 2, 8, 0, 0, 0, time.UTC)
	remoteState := &models.UserProgress{
		UserID:             "user-1",
		TotalPoints:        120,
		Level:              2,
		CurrentLevelPoints: 20,
		StreakDays:         3,
		LastActivityDate:   &now,
		CompletedActionIDs: []string{"enable-2fa"},
	}
	challenge := &models.Challenge{ID: "ch-1", UserID: "user-1", StartDate: &now, CurrentDay: 2, CompletedDayCount: 1}
	tasks := []models.DailyTask{{ChallengeID: "ch-1", TaskID: "t-1", Day: 1, Title: "One", Difficulty: models.DifficultyEasy, Completed: true}}
	unlocks := []models.AchievementUnlock{{UserID: "user-1", AchievementID: "first-action", UnlockedAt: now}}

	remoteProgress.On("GetUserProgress", mock.Anything, "user-1").Return(remoteState, nil).Once()
	remoteUnlocks.On("GetUnlocks", mock.Anything, "user-1").Return(unlocks, nil).Once()
	remoteChallenge.On("GetChallenge", mock.Anything, "user-1").Return(challenge, nil).Once()
	remoteChallenge.On("GetDailyTasks", mock.Anything, "ch-1").Return(tasks, nil).Once()

	svc := NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	defer svc.Close()

	svc.EnsureHydrated(ctx, "user-1")
	// Panggilan kedua tidak menyentuh remote lagi (ekspektasi .Once menjaga ini).
	svc.EnsureHydrated(ctx, "user-1")

	progress, err := localRepo.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 120, progress.TotalPoints)
	assert.Equal(t, []string{"enable-2fa"}, progress.CompletedActionIDs)

	restored, err := localRepo.GetChallenge(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "ch-1", restored.ID)

	restoredTasks, err := localRepo.GetTasks(ctx, "ch-1")
	require.NoError(t, err)
	require.Len(t, restoredTasks, 1)
	assert.True(t, restoredTasks[0].Completed)

	ids, err := localRepo.GetUnlockedIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ids["first-action"])
}

func TestSyncService_HydrationFailureKeepsLocalState(t *testing.T) {
	localRepo, remoteProgress, remoteChallenge, remoteUnlocks := newSyncFixture(t)
	ctx := context.Background()

	local := &models.UserProgress{UserID: "user-1", TotalPoints: 75, Level: 1, CurrentLevelPoints: 75}
	require.NoError(t, localRepo.SaveProgress(ctx, local))

	remoteProgress.On("GetUserProgress", mock.Anything, "user-1").Return(nil, assert.AnError).Once()

	svc := NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	defer svc.Close()

	// Tidak panic dan tidak menimpa state lokal.
	svc.EnsureHydrated(ctx, "user-1")

	progress, err := localRepo.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 75, progress.TotalPoints)
}

func TestSyncService_PushWritesFullState(t *testing.T) {
	localRepo, remoteProgress, remoteChallenge, remoteUnlocks := newSyncFixture(t)
	ctx := context.Background()

	local := &models.UserProgress{UserID: "user-1", TotalPoints: 40, Level: 1, CurrentLevelPoints: 40}
	require.NoError(t, localRepo.SaveProgress(ctx, local))

	// Tanpa challenge lokal, push membersihkan challenge di mirror.
	remoteProgress.On("UpsertUserProgress", mock.Anything, mock.MatchedBy(func(p *models.UserProgress) bool {
		return p.UserID == "user-1" && p.TotalPoints == 40
	})).Return(nil).Once()
	remoteUnlocks.On("UpsertUnlocks", mock.Anything, mock.Anything).Return(nil).Once()
	remoteChallenge.On("DeleteChallenge", mock.Anything, "user-1").Return(nil).Once()

	svc := NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	svc.EnqueuePush("user-1")
	// Close men-drain antrian, jadi setelah ini push pasti sudah terjadi.
	svc.Close()
}

func TestSyncService_PushChallengeReplacesStaleMirror(t *testing.T) {
	localRepo, remoteProgress, remoteChallenge, remoteUnlocks := newSyncFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	local := &models.UserProgress{UserID: "user-1", TotalPoints: 10, Level: 1, CurrentLevelPoints: 10}
	require.NoError(t, localRepo.SaveProgress(ctx, local))
	challenge := &models.Challenge{ID: "ch-new", UserID: "user-1", StartDate: &now}
	require.NoError(t, localRepo.SaveChallenge(ctx, challenge))
	require.NoError(t, localRepo.ReplaceTasks(ctx, "ch-new", []models.DailyTask{
		{ChallengeID: "ch-new", TaskID: "t-1", Day: 1, Title: "One", Difficulty: models.DifficultyEasy},
	}))

	remoteProgress.On("UpsertUserProgress", mock.Anything, mock.Anything).Return(nil).Once()
	remoteUnlocks.On("UpsertUnlocks", mock.Anything, mock.Anything).Return(nil).Once()
	// Mirror masih menyimpan challenge lama: harus dibuang sebelum upsert.
	remoteChallenge.On("GetChallenge", mock.Anything, "user-1").Return(&models.Challenge{ID: "ch-old", UserID: "user-1"}, nil).Once()
	remoteChallenge.On("DeleteChallenge", mock.Anything, "user-1").Return(nil).Once()
	remoteChallenge.On("UpsertChallenge", mock.Anything, mock.MatchedBy(func(c *models.Challenge) bool {
		return c.ID == "ch-new"
	})).Return(nil).Once()
	remoteChallenge.On("UpsertDailyTasks", mock.Anything, mock.MatchedBy(func(tasks []models.DailyTask) bool {
		return len(tasks) == 1 && tasks[0].ChallengeID == "ch-new"
	})).Return(nil).Once()

	svc := NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	svc.EnqueuePush("user-1")
	svc.Close()
}

// Hydration cold-start berjalan di bawah lock per-user yang sama dengan
// mutasi: request yang datang saat hydration masih berjalan ikut menunggu,
// sehingga mutasi yang sudah commit tidak pernah tertimpa hasil restore.
func TestSyncService_HydrationSerializedWithMutations(t *testing.T) {
	localRepo, remoteProgress, remoteChallenge, remoteUnlocks := newSyncFixture(t)

	hydrationStarted := make(chan struct{})
	releaseHydration := make(chan struct{})
	remoteState := &models.UserProgress{
		UserID:             "user-1",
		TotalPoints:        100,
		Level:              2,
		CurrentLevelPoints: 0,
	}

	remoteProgress.On("GetUserProgress", mock.Anything, "user-1").
		Run(func(args mock.Arguments) {
			close(hydrationStarted)
			<-releaseHydration
		}).
		Return(remoteState, nil).Once()
	remoteUnlocks.On("GetUnlocks", mock.Anything, "user-1").Return([]models.AchievementUnlock{}, nil).Once()
	remoteChallenge.On("GetChallenge", mock.Anything, "user-1").Return(nil, nil).Once()

	// Push background setelah mutasi; isinya bukan fokus test ini.
	remoteProgress.On("UpsertUserProgress", mock.Anything, mock.Anything).Return(nil).Maybe()
	remoteUnlocks.On("UpsertUnlocks", mock.Anything, mock.Anything).Return(nil).Maybe()
	remoteChallenge.On("DeleteChallenge", mock.Anything, "user-1").Return(nil).Maybe()

	syncSvc := NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	ledger := NewPointLedger(localRepo, nil)
	engine := NewAchievementEngine(localRepo, ledger)
	locks := &UserLocks{}
	progressSvc := NewProgressService(localRepo, ledger, engine, syncSvc, locks)

	ctx := context.Background()
	firstDone := make(chan error, 1)
	go func() {
		_, err := progressSvc.CompleteAssessment(ctx, "user-1")
		firstDone <- err
	}()
	<-hydrationStarted

	secondDone := make(chan error, 1)
	go func() {
		_, err := progressSvc.CompleteAssessment(ctx, "user-1")
		secondDone <- err
	}()

	// Selama hydration masih berjalan, mutasi kedua belum boleh commit.
	select {
	case <-secondDone:
		t.Fatal("mutation committed while hydration was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(releaseHydration)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
	syncSvc.Close()

	progress, err := localRepo.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	// Saldo mirror (100) plus dua assessment dan bonus achievement-nya;
	// tidak ada mutasi yang hilang tertimpa restore.
	assert.GreaterOrEqual(t, progress.TotalPoints, 100+2*PointsPerAssessment)
	assert.Equal(t, 2, progress.AssessmentCount)
}
