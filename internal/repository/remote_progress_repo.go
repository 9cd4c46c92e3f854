// internal/repository/remote_progress_repo.go
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/privguard/progress-engine-be/internal/models"
)

type remoteProgressRepo struct {
	db *pgxpool.Pool
}

// NewRemoteProgressRepository membuat mirror repository progres di Postgres.
func NewRemoteProgressRepository(db *pgxpool.Pool) RemoteProgressRepository {
	return &remoteProgressRepo{db: db}
}

// GetUserProgress mengembalikan (nil, nil) kalau mirror belum pernah menerima
// state untuk user ini.
func (r *remoteProgressRepo) GetUserProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	query := `
		SELECT user_id, total_points, level, current_level_points, streak_days,
		       last_activity_date, completed_action_ids, assessment_count,
		       social_share_count, updated_at
		FROM user_progress
		WHERE user_id = $1`

	var progress models.UserProgress
	var actionIDs []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&progress.UserID,
		&progress.TotalPoints,
		&progress.Level,
		&progress.CurrentLevelPoints,
		&progress.StreakDays,
		&progress.LastActivityDate,
		&actionIDs,
		&progress.AssessmentCount,
		&progress.SocialShareCount,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	progress.CompletedActionIDs = []string{}
	if len(actionIDs) > 0 {
		if err := json.Unmarshal(actionIDs, &progress.CompletedActionIDs); err != nil {
			return nil, err
		}
	}
	return &progress, nil
}

// UpsertUserProgress menimpa seluruh record mirror dengan state lokal terbaru.
// Whole-record upsert: tidak ada merge per kolom, local selalu menang.
func (r *remoteProgressRepo) UpsertUserProgress(ctx context.Context, progress *models.UserProgress) error {
	actionIDs, err := json.Marshal(progress.CompletedActionIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_progress (
			user_id, total_points, level, current_level_points, streak_days,
			last_activity_date, completed_action_ids, assessment_count,
			social_share_count, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			total_points = EXCLUDED.total_points,
			level = EXCLUDED.level,
			current_level_points = EXCLUDED.current_level_points,
			streak_days = EXCLUDED.streak_days,
			last_activity_date = EXCLUDED.last_activity_date,
			completed_action_ids = EXCLUDED.completed_action_ids,
			assessment_count = EXCLUDED.assessment_count,
			social_share_count = EXCLUDED.social_share_count,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		progress.UserID,
		progress.TotalPoints,
		progress.Level,
		progress.CurrentLevelPoints,
		progress.StreakDays,
		progress.LastActivityDate,
		actionIDs,
		progress.AssessmentCount,
		progress.SocialShareCount,
		progress.UpdatedAt,
	)
	return err
}
