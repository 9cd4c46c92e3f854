// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/privguard/progress-engine-be/internal/models"
)

// LocalStateRepository adalah kontrak akses ke local store (SQLite).
// Semua operasi bersifat sinkron dan menjadi sumber kebenaran engine.
type LocalStateRepository interface {
	// Progress
	GetProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	SaveProgress(ctx context.Context, progress *models.UserProgress) error
	DeleteProgress(ctx context.Context, userID string) error

	// Achievement unlocks
	GetUnlockedIDs(ctx context.Context, userID string) (map[string]bool, error)
	GetUnlocks(ctx context.Context, userID string) ([]models.AchievementUnlock, error)
	SaveUnlocks(ctx context.Context, unlocks []models.AchievementUnlock) error
	DeleteUnlocks(ctx context.Context, userID, idPrefix string) error

	// Challenge + daily tasks
	GetChallenge(ctx context.Context, userID string) (*models.Challenge, error)
	SaveChallenge(ctx context.Context, challenge *models.Challenge) error
	DeleteChallenge(ctx context.Context, userID string) error
	GetTasks(ctx context.Context, challengeID string) ([]models.DailyTask, error)
	SaveTask(ctx context.Context, task *models.DailyTask) error
	ReplaceTasks(ctx context.Context, challengeID string, tasks []models.DailyTask) error

	// Point ledger history
	RecordTransaction(ctx context.Context, tx *models.PointTransaction) error
	GetTransactionsByUserID(ctx context.Context, userID string, page, limit int) ([]models.PointTransaction, int, error)
	DeleteTransactions(ctx context.Context, userID string) error
}

// RemoteProgressRepository meng-mirror state progres user ke Postgres.
// Implementasi tidak boleh dipakai untuk keputusan bisnis; hanya backup/restore.
type RemoteProgressRepository interface {
	GetUserProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	UpsertUserProgress(ctx context.Context, progress *models.UserProgress) error
}

// RemoteChallengeRepository meng-mirror state challenge beserta daily tasks.
type RemoteChallengeRepository interface {
	GetChallenge(ctx context.Context, userID string) (*models.Challenge, error)
	UpsertChallenge(ctx context.Context, challenge *models.Challenge) error
	GetDailyTasks(ctx context.Context, challengeID string) ([]models.DailyTask, error)
	UpsertDailyTasks(ctx context.Context, tasks []models.DailyTask) error
	DeleteChallenge(ctx context.Context, userID string) error
}

// RemoteAchievementRepository meng-mirror unlock achievement per user.
type RemoteAchievementRepository interface {
	GetUnlocks(ctx context.Context, userID string) ([]models.AchievementUnlock, error)
	UpsertUnlocks(ctx context.Context, unlocks []models.AchievementUnlock) error
	DeleteUnlocks(ctx context.Context, userID string) error
}
