// internal/repository/local_state_repo.go
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/privguard/progress-engine-be/internal/models"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type localStateRepo struct {
	db *gorm.DB
}

// NewLocalStateRepository membuat repository di atas local store SQLite.
func NewLocalStateRepository(db *gorm.DB) LocalStateRepository {
	return &localStateRepo{db: db}
}

// GetProgress memuat progres user. Record yang belum ada, atau blob tersimpan
// yang korup dan tidak bisa di-deserialisasi, menghasilkan progres default
// yang masih valid. Error lain (context batal, database sibuk) bersifat
// transien dan diteruskan ke caller, supaya mutasi tidak berjalan di atas
// state default palsu lalu menimpa ledger user yang sebenarnya.
func (r *localStateRepo) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := r.db.WithContext(ctx).First(&progress, "user_id = ?", userID).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewUserProgress(userID), nil
	case isCorruptRecord(err):
		zlog.Warn().Err(err).Str("user_id", userID).Msg("Stored progress unreadable, falling back to defaults")
		return models.NewUserProgress(userID), nil
	default:
		return nil, err
	}
	if progress.CompletedActionIDs == nil {
		progress.CompletedActionIDs = []string{}
	}
	return &progress, nil
}

// isCorruptRecord true hanya untuk kegagalan deserialisasi blob tersimpan.
func isCorruptRecord(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (r *localStateRepo) SaveProgress(ctx context.Context, progress *models.UserProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *localStateRepo) DeleteProgress(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.UserProgress{}, "user_id = ?", userID).Error
}

func (r *localStateRepo) GetUnlockedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.AchievementUnlock{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]bool, len(ids))
	for _, id := range ids {
		unlocked[id] = true
	}
	return unlocked, nil
}

func (r *localStateRepo) GetUnlocks(ctx context.Context, userID string) ([]models.AchievementUnlock, error) {
	var unlocks []models.AchievementUnlock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&unlocks).Error
	return unlocks, err
}

// SaveUnlocks menyimpan unlock baru. Konflik pada primary key komposit
// (user_id, achievement_id) diabaikan supaya unlock bersifat idempoten.
func (r *localStateRepo) SaveUnlocks(ctx context.Context, unlocks []models.AchievementUnlock) error {
	if len(unlocks) == 0 {
		return nil
	}
	for i := range unlocks {
		err := r.db.WithContext(ctx).Save(&unlocks[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *localStateRepo) DeleteUnlocks(ctx context.Context, userID, idPrefix string) error {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if idPrefix != "" {
		query = query.Where("achievement_id LIKE ?", idPrefix+"%")
	}
	return query.Delete(&models.AchievementUnlock{}).Error
}

// GetChallenge mengembalikan (nil, nil) kalau user belum punya challenge sama
// sekali; caller memetakan nil menjadi status not_started.
func (r *localStateRepo) GetChallenge(ctx context.Context, userID string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.WithContext(ctx).First(&challenge, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *localStateRepo) SaveChallenge(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Save(challenge).Error
}

// DeleteChallenge menghapus challenge user beserta seluruh daily task-nya.
func (r *localStateRepo) DeleteChallenge(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		err := tx.First(&challenge, "user_id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&models.DailyTask{}, "challenge_id = ?", challenge.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Challenge{}, "id = ?", challenge.ID).Error
	})
}

func (r *localStateRepo) GetTasks(ctx context.Context, challengeID string) ([]models.DailyTask, error) {
	var tasks []models.DailyTask
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("day ASC, task_id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *localStateRepo) SaveTask(ctx context.Context, task *models.DailyTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// ReplaceTasks mengganti seluruh task milik sebuah challenge secara atomik.
// Dipakai saat start/reset challenge dan saat restore dari mirror remote.
func (r *localStateRepo) ReplaceTasks(ctx context.Context, challengeID string, tasks []models.DailyTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.DailyTask{}, "challenge_id = ?", challengeID).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Create(&tasks).Error
	})
}

func (r *localStateRepo) RecordTransaction(ctx context.Context, trx *models.PointTransaction) error {
	return r.db.WithContext(ctx).Create(trx).Error
}

func (r *localStateRepo) GetTransactionsByUserID(ctx context.Context, userID string, page, limit int) ([]models.PointTransaction, int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var transactions []models.PointTransaction
	offset := (page - 1) * limit
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, int(total), nil
}

func (r *localStateRepo) DeleteTransactions(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.PointTransaction{}, "user_id = ?", userID).Error
}
