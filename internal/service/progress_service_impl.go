// internal/service/progress_service_impl.go
package service

import (
	"context"

	"github.com/privguard/progress-engine-be/internal/catalog"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

// Poin dasar per jenis aktivitas.
const (
	PointsPerAction     = 25
	PointsPerAssessment = 20
	PointsPerShare      = 15
)

type progressService struct {
	localRepo repository.LocalStateRepository
	ledger    *PointLedger
	engine    AchievementEngine
	sync      SyncService
	locks     *UserLocks
}

// NewProgressService membuat service progres. locks wajib di-share dengan
// ChallengeService supaya mutasi progres dan challenge user yang sama tetap
// terserialisasi lewat mutex yang sama.
func NewProgressService(
	localRepo repository.LocalStateRepository,
	ledger *PointLedger,
	engine AchievementEngine,
	syncSvc SyncService,
	locks *UserLocks,
) ProgressService {
	return &progressService{
		localRepo: localRepo,
		ledger:    ledger,
		engine:    engine,
		sync:      syncSvc,
		locks:     locks,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	return s.localRepo.GetProgress(ctx, userID)
}

// AddPoints memberikan poin langsung (dipakai feature lain sebagai reward).
func (s *progressService) AddPoints(ctx context.Context, userID string, input *models.AddPointsInput) (*models.ProgressUpdate, error) {
	if input.Points < 0 {
		return nil, ErrNegativePoints
	}
	return s.mutate(ctx, userID, func(progress *models.UserProgress) (int, error) {
		return input.Points, nil
	}, models.PointSource(input.Source), "", input.Notes)
}

// CompleteAction menandai satu aksi privasi selesai. Aksi yang sudah pernah
// selesai adalah no-op: tidak ada poin ganda, state tidak berubah.
func (s *progressService) CompleteAction(ctx context.Context, userID, actionID string) (*models.ProgressUpdate, error) {
	return s.mutate(ctx, userID, func(progress *models.UserProgress) (int, error) {
		if progress.HasCompletedAction(actionID) {
			return 0, nil
		}
		progress.CompletedActionIDs = append(progress.CompletedActionIDs, actionID)
		return PointsPerAction, nil
	}, models.SourceActionCompleted, actionID, "")
}

func (s *progressService) CompleteAssessment(ctx context.Context, userID string) (*models.ProgressUpdate, error) {
	return s.mutate(ctx, userID, func(progress *models.UserProgress) (int, error) {
		progress.AssessmentCount++
		return PointsPerAssessment, nil
	}, models.SourceAssessment, "", "")
}

func (s *progressService) ShareContent(ctx context.Context, userID string) (*models.ProgressUpdate, error) {
	return s.mutate(ctx, userID, func(progress *models.UserProgress) (int, error) {
		progress.SocialShareCount++
		return PointsPerShare, nil
	}, models.SourceSocialShare, "", "")
}

// mutate adalah jalur seragam semua mutasi progres: lock per user, hydrate
// di dalam lock (supaya restore cold-start tidak menimpa mutasi yang sedang
// commit), muat state, jalankan mutasi domain, award lewat ledger, evaluasi
// achievement dari snapshot final, lalu jadwalkan push ke mirror.
func (s *progressService) mutate(
	ctx context.Context,
	userID string,
	fn func(progress *models.UserProgress) (int, error),
	source models.PointSource,
	relatedID, notes string,
) (*models.ProgressUpdate, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	progress, err := s.localRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	points, err := fn(progress)
	if err != nil {
		return nil, err
	}

	leveledUp, err := s.ledger.Apply(ctx, progress, points, source, relatedID, notes)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, userID, progress)
	if err != nil {
		return nil, err
	}
	newlyUnlocked, err := s.engine.Evaluate(ctx, userID, snapshot)
	if err != nil {
		return nil, err
	}
	if len(newlyUnlocked) > 0 {
		// Bonus achievement mengubah progres tersimpan; muat ulang supaya
		// response memuat saldo setelah bonus.
		progress, err = s.localRepo.GetProgress(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	s.sync.EnqueuePush(userID)

	return &models.ProgressUpdate{
		Progress:      progress,
		PointsAwarded: points,
		LeveledUp:     leveledUp,
		NewlyUnlocked: newlyUnlocked,
	}, nil
}

func (s *progressService) snapshot(ctx context.Context, userID string, progress *models.UserProgress) (models.ProgressSnapshot, error) {
	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return models.ProgressSnapshot{}, err
	}
	return models.ProgressSnapshot{
		Progress:        *progress,
		Challenge:       challenge,
		ChallengeStreak: ChallengeStreakDays(challenge, s.ledger.Now()),
	}, nil
}

// ResetProgress mengosongkan seluruh state gamifikasi user: progres kembali
// default, semua unlock dihapus, riwayat poin dihapus. Challenge TIDAK ikut
// di-reset; itu lifecycle terpisah.
func (s *progressService) ResetProgress(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	progress, err := s.localRepo.GetProgress(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.localRepo.DeleteTransactions(ctx, userID); err != nil {
		return err
	}
	if err := s.ledger.Reset(ctx, progress); err != nil {
		return err
	}
	if err := s.localRepo.DeleteUnlocks(ctx, userID, ""); err != nil {
		return err
	}

	zlog.Info().Str("user_id", userID).Msg("User progress reset")
	s.sync.EnqueuePush(userID)
	return nil
}

// GetAchievements menggabungkan katalog statis dengan state unlock user.
func (s *progressService) GetAchievements(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	unlocks, err := s.localRepo.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]models.AchievementUnlock, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u
	}

	defs := catalog.AllAchievements()
	statuses := make([]models.AchievementStatus, 0, len(defs))
	for _, def := range defs {
		status := models.AchievementStatus{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Points:      def.Points,
		}
		if u, ok := unlockedAt[def.ID]; ok {
			status.Unlocked = true
			t := u.UnlockedAt
			status.UnlockedAt = &t
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *progressService) GetPointHistory(ctx context.Context, userID string, page, limit int) ([]models.PointTransaction, int, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	return s.localRepo.GetTransactionsByUserID(ctx, userID, page, limit)
}
