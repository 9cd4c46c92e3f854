// internal/repository/remote_challenge_repo.go
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/privguard/progress-engine-be/internal/models"
)

type remoteChallengeRepo struct {
	db *pgxpool.Pool
}

// NewRemoteChallengeRepository membuat mirror repository challenge di Postgres.
func NewRemoteChallengeRepository(db *pgxpool.Pool) RemoteChallengeRepository {
	return &remoteChallengeRepo{db: db}
}

func (r *remoteChallengeRepo) GetChallenge(ctx context.Context, userID string) (*models.Challenge, error) {
	query := `
		SELECT id, user_id, start_date, current_day, completed_day_count,
		       total_points, milestone_day_7, milestone_day_14,
		       milestone_day_21, milestone_day_30, created_at, updated_at
		FROM challenges
		WHERE user_id = $1`

	var challenge models.Challenge
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&challenge.ID,
		&challenge.UserID,
		&challenge.StartDate,
		&challenge.CurrentDay,
		&challenge.CompletedDayCount,
		&challenge.TotalPoints,
		&challenge.MilestoneDay7,
		&challenge.MilestoneDay14,
		&challenge.MilestoneDay21,
		&challenge.MilestoneDay30,
		&challenge.CreatedAt,
		&challenge.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

// UpsertChallenge: satu user hanya punya satu challenge, konflik resolve
// lewat user_id supaya reset (id baru) menimpa baris lama.
func (r *remoteChallengeRepo) UpsertChallenge(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (
			id, user_id, start_date, current_day, completed_day_count,
			total_points, milestone_day_7, milestone_day_14,
			milestone_day_21, milestone_day_30, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id,
			start_date = EXCLUDED.start_date,
			current_day = EXCLUDED.current_day,
			completed_day_count = EXCLUDED.completed_day_count,
			total_points = EXCLUDED.total_points,
			milestone_day_7 = EXCLUDED.milestone_day_7,
			milestone_day_14 = EXCLUDED.milestone_day_14,
			milestone_day_21 = EXCLUDED.milestone_day_21,
			milestone_day_30 = EXCLUDED.milestone_day_30,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		challenge.ID,
		challenge.UserID,
		challenge.StartDate,
		challenge.CurrentDay,
		challenge.CompletedDayCount,
		challenge.TotalPoints,
		challenge.MilestoneDay7,
		challenge.MilestoneDay14,
		challenge.MilestoneDay21,
		challenge.MilestoneDay30,
		challenge.CreatedAt,
		challenge.UpdatedAt,
	)
	return err
}

func (r *remoteChallengeRepo) GetDailyTasks(ctx context.Context, challengeID string) ([]models.DailyTask, error) {
	query := `
		SELECT challenge_id, task_id, day, title, description, difficulty,
		       completed, completed_at
		FROM daily_tasks
		WHERE challenge_id = $1
		ORDER BY day ASC, task_id ASC`

	rows, err := r.db.Query(ctx, query, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.DailyTask
	for rows.Next() {
		var task models.DailyTask
		err := rows.Scan(
			&task.ChallengeID,
			&task.TaskID,
			&task.Day,
			&task.Title,
			&task.Description,
			&task.Difficulty,
			&task.Completed,
			&task.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpsertDailyTasks menulis seluruh batch task dalam satu transaksi supaya
// mirror tidak pernah terlihat setengah jadi.
func (r *remoteChallengeRepo) UpsertDailyTasks(ctx context.Context, tasks []models.DailyTask) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO daily_tasks (
			challenge_id, task_id, day, title, description, difficulty,
			completed, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (challenge_id, task_id) DO UPDATE SET
			day = EXCLUDED.day,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			difficulty = EXCLUDED.difficulty,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at`

	for i := range tasks {
		task := &tasks[i]
		_, err := tx.Exec(ctx, query,
			task.ChallengeID,
			task.TaskID,
			task.Day,
			task.Title,
			task.Description,
			task.Difficulty,
			task.Completed,
			task.CompletedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteChallenge menghapus challenge user dari mirror beserta task-nya.
func (r *remoteChallengeRepo) DeleteChallenge(ctx context.Context, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM daily_tasks
		WHERE challenge_id IN (SELECT id FROM challenges WHERE user_id = $1)`, userID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM challenges WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
