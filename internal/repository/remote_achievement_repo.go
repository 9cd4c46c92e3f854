// internal/repository/remote_achievement_repo.go
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/privguard/progress-engine-be/internal/models"
)

type remoteAchievementRepo struct {
	db *pgxpool.Pool
}

// NewRemoteAchievementRepository membuat mirror repository unlock di Postgres.
func NewRemoteAchievementRepository(db *pgxpool.Pool) RemoteAchievementRepository {
	return &remoteAchievementRepo{db: db}
}

func (r *remoteAchievementRepo) GetUnlocks(ctx context.Context, userID string) ([]models.AchievementUnlock, error) {
	query := `
		SELECT user_id, achievement_id, unlocked_at
		FROM achievement_unlocks
		WHERE user_id = $1
		ORDER BY unlocked_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []models.AchievementUnlock
	for rows.Next() {
		var unlock models.AchievementUnlock
		if err := rows.Scan(&unlock.UserID, &unlock.AchievementID, &unlock.UnlockedAt); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return unlocks, rows.Err()
}

// UpsertUnlocks: unlock tidak pernah berubah setelah tercipta, jadi konflik
// cukup mempertahankan unlocked_at yang lama (DO NOTHING).
func (r *remoteAchievementRepo) UpsertUnlocks(ctx context.Context, unlocks []models.AchievementUnlock) error {
	if len(unlocks) == 0 {
		return nil
	}

	query := `
		INSERT INTO achievement_unlocks (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`

	for i := range unlocks {
		unlock := &unlocks[i]
		_, err := r.db.Exec(ctx, query, unlock.UserID, unlock.AchievementID, unlock.UnlockedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *remoteAchievementRepo) DeleteUnlocks(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM achievement_unlocks WHERE user_id = $1`, userID)
	return err
}
