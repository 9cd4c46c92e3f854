// internal/service/challenge_service_impl.go
package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/privguard/progress-engine-be/internal/catalog"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

// ChallengeStartBonus adalah poin yang diberikan satu kali saat user memulai
// challenge 30 hari.
const ChallengeStartBonus = 50

type challengeService struct {
	localRepo repository.LocalStateRepository
	ledger    *PointLedger
	engine    AchievementEngine
	sync      SyncService
	locks     *UserLocks
}

// NewChallengeService membuat service lifecycle challenge 30 hari.
func NewChallengeService(
	localRepo repository.LocalStateRepository,
	ledger *PointLedger,
	engine AchievementEngine,
	syncSvc SyncService,
	locks *UserLocks,
) ChallengeService {
	return &challengeService{
		localRepo: localRepo,
		ledger:    ledger,
		engine:    engine,
		sync:      syncSvc,
		locks:     locks,
	}
}

func (s *challengeService) GetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildState(ctx, challenge, 0, nil)
}

// StartChallenge men-transisi challenge dari not_started ke active: set
// StartDate, beri bonus mulai, dan evaluasi achievement. Kalau user belum
// punya baris challenge sama sekali, rencana 30 hari dibuat dulu.
func (s *challengeService) StartChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if challenge != nil && challenge.StartDate != nil {
		return nil, ErrChallengeAlreadyStarted
	}
	if challenge == nil {
		challenge, err = s.createPlan(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	now := s.ledger.Now()
	challenge.StartDate = &now
	challenge.CurrentDay = 1
	if err := s.localRepo.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	progress, err := s.localRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.Apply(ctx, progress, ChallengeStartBonus, models.SourceChallengeStarted, challenge.ID, ""); err != nil {
		return nil, err
	}

	newlyUnlocked, err := s.evaluate(ctx, userID, progress, challenge)
	if err != nil {
		return nil, err
	}

	zlog.Info().Str("user_id", userID).Str("challenge_id", challenge.ID).Msg("Challenge started")
	s.sync.EnqueuePush(userID)
	return s.buildState(ctx, challenge, ChallengeStartBonus, newlyUnlocked)
}

// CompleteTask menandai satu task selesai dan memberi poin sesuai difficulty.
// Task yang sudah selesai adalah no-op. Challenge harus sudah dimulai.
func (s *challengeService) CompleteTask(ctx context.Context, userID, taskID string) (*models.ChallengeState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if challenge == nil || challenge.StartDate == nil {
		return nil, ErrChallengeNotStarted
	}

	tasks, err := s.localRepo.GetTasks(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	var task *models.DailyTask
	for i := range tasks {
		if tasks[i].TaskID == taskID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Completed {
		return s.buildState(ctx, challenge, 0, nil)
	}

	now := s.ledger.Now()
	task.Completed = true
	task.CompletedAt = &now
	if err := s.localRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	s.recompute(challenge, tasks)
	if err := s.localRepo.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	points := catalog.DifficultyPoints(task.Difficulty)
	progress, err := s.localRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.Apply(ctx, progress, points, models.SourceTaskCompletion, task.TaskID, ""); err != nil {
		return nil, err
	}

	newlyUnlocked, err := s.evaluate(ctx, userID, progress, challenge)
	if err != nil {
		return nil, err
	}

	s.sync.EnqueuePush(userID)
	return s.buildState(ctx, challenge, points, newlyUnlocked)
}

// ResetChallenge membuang challenge lama (beserta task dan unlock khusus
// challenge-nya) lalu membuat rencana 30 hari baru dalam keadaan not_started.
// Poin yang sudah terlanjur masuk ledger TIDAK ditarik kembali.
func (s *challengeService) ResetChallenge(ctx context.Context, userID string) (*models.ChallengeState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	if err := s.localRepo.DeleteChallenge(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.localRepo.DeleteUnlocks(ctx, userID, "challenge-"); err != nil {
		return nil, err
	}

	challenge, err := s.createPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	zlog.Info().Str("user_id", userID).Str("challenge_id", challenge.ID).Msg("Challenge reset")
	s.sync.EnqueuePush(userID)
	return s.buildState(ctx, challenge, 0, nil)
}

// CurrentDayTasks mengembalikan task untuk hari berjalan challenge.
func (s *challengeService) CurrentDayTasks(ctx context.Context, userID string) ([]models.DailyTask, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	s.sync.EnsureHydrated(ctx, userID)

	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if challenge == nil || challenge.StartDate == nil {
		return nil, ErrChallengeNotStarted
	}

	tasks, err := s.localRepo.GetTasks(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	var todays []models.DailyTask
	for _, task := range tasks {
		if task.Day == challenge.CurrentDay {
			todays = append(todays, task)
		}
	}
	return todays, nil
}

// createPlan membuat instance challenge baru (belum dimulai) lengkap dengan
// 30 task hasil instantiasi template.
func (s *challengeService) createPlan(ctx context.Context, userID string) (*models.Challenge, error) {
	challenge := &models.Challenge{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	if err := s.localRepo.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	tasks := catalog.InstantiateTasks(challenge.ID)
	if err := s.localRepo.ReplaceTasks(ctx, challenge.ID, tasks); err != nil {
		return nil, err
	}
	return challenge, nil
}

// recompute menurunkan field agregat challenge dari daftar task-nya.
// CompletedDayCount = hari terjauh yang punya task selesai; CurrentDay maju
// satu hari setelahnya. Milestone hanya pernah di-set true (monotonic).
func (s *challengeService) recompute(challenge *models.Challenge, tasks []models.DailyTask) {
	maxDay := 0
	totalPoints := 0
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		if task.Day > maxDay {
			maxDay = task.Day
		}
		totalPoints += catalog.DifficultyPoints(task.Difficulty)
	}

	challenge.CompletedDayCount = maxDay
	challenge.TotalPoints = totalPoints

	next := maxDay + 1
	if next > models.ChallengeLengthDays {
		next = models.ChallengeLengthDays
	}
	if next > challenge.CurrentDay {
		challenge.CurrentDay = next
	}

	if maxDay >= 7 {
		challenge.MilestoneDay7 = true
	}
	if maxDay >= 14 {
		challenge.MilestoneDay14 = true
	}
	if maxDay >= 21 {
		challenge.MilestoneDay21 = true
	}
	if maxDay >= 30 {
		challenge.MilestoneDay30 = true
	}
}

func (s *challengeService) evaluate(ctx context.Context, userID string, progress *models.UserProgress, challenge *models.Challenge) ([]string, error) {
	snapshot := models.ProgressSnapshot{
		Progress:        *progress,
		Challenge:       challenge,
		ChallengeStreak: ChallengeStreakDays(challenge, s.ledger.Now()),
	}
	return s.engine.Evaluate(ctx, userID, snapshot)
}

func (s *challengeService) buildState(ctx context.Context, challenge *models.Challenge, pointsAwarded int, newlyUnlocked []string) (*models.ChallengeState, error) {
	state := &models.ChallengeState{
		Status:        challenge.Status(),
		Challenge:     challenge,
		Tasks:         []models.DailyTask{},
		StreakDays:    ChallengeStreakDays(challenge, s.ledger.Now()),
		PointsAwarded: pointsAwarded,
		NewlyUnlocked: newlyUnlocked,
	}
	if challenge == nil {
		return state, nil
	}

	tasks, err := s.localRepo.GetTasks(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	state.Tasks = tasks

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	if len(tasks) > 0 {
		state.ProgressPercentage = int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	}
	return state, nil
}
