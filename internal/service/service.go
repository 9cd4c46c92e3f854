// internal/service/service.go
package service

import (
	"context"

	"github.com/privguard/progress-engine-be/internal/models"
)

// ProgressService menangani seluruh mutasi dan query progres gamifikasi:
// poin, level, streak, action, assessment, share, dan riwayat poin.
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	AddPoints(ctx context.Context, userID string, input *models.AddPointsInput) (*models.ProgressUpdate, error)
	CompleteAction(ctx context.Context, userID, actionID string) (*models.ProgressUpdate, error)
	CompleteAssessment(ctx context.Context, userID string) (*models.ProgressUpdate, error)
	ShareContent(ctx context.Context, userID string) (*models.ProgressUpdate, error)
	ResetProgress(ctx context.Context, userID string) error
	GetAchievements(ctx context.Context, userID string) ([]models.AchievementStatus, error)
	GetPointHistory(ctx context.Context, userID string, page, limit int) ([]models.PointTransaction, int, error)
}

// ChallengeService menangani lifecycle challenge 30 hari.
type ChallengeService interface {
	GetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error)
	StartChallenge(ctx context.Context, userID string) (*models.ChallengeState, error)
	CompleteTask(ctx context.Context, userID, taskID string) (*models.ChallengeState, error)
	ResetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error)
	CurrentDayTasks(ctx context.Context, userID string) ([]models.DailyTask, error)
}

// AchievementEngine mengevaluasi katalog achievement terhadap snapshot state
// dan menerbitkan unlock baru beserta bonus poinnya.
type AchievementEngine interface {
	Evaluate(ctx context.Context, userID string, snapshot models.ProgressSnapshot) ([]string, error)
}

// SyncService mengelola mirror remote: hydration saat cold start dan push
// background setelah setiap mutasi lokal.
type SyncService interface {
	// EnsureHydrated melakukan restore satu kali per user per proses dari
	// mirror remote, sebelum operasi pertama user tersebut dilayani. Harus
	// dipanggil sambil memegang lock per-user yang dipakai jalur mutasi;
	// pemanggil yang datang saat hydration masih berjalan akan menunggu,
	// sehingga restore tidak pernah menimpa mutasi yang sudah commit.
	EnsureHydrated(ctx context.Context, userID string)
	// EnqueuePush menjadwalkan push full-state untuk user. Non-blocking;
	// saat antrian penuh push di-drop (state lokal tetap aman).
	EnqueuePush(userID string)
	// Close menutup antrian dan menunggu worker selesai drain.
	Close()
}
