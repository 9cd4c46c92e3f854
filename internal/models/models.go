package models

import (
	"time"
)

// PointsPerLevel adalah konstanta tetap untuk formula level:
// level = totalPoints/PointsPerLevel + 1.
const PointsPerLevel = 100

// ====================================================================================
// User Progress
// ====================================================================================

// UserProgress menyimpan state gamifikasi kumulatif untuk satu user.
// Invariant yang harus selalu berlaku setelah mutasi apapun:
//   - Level == TotalPoints/PointsPerLevel + 1
//   - CurrentLevelPoints == TotalPoints % PointsPerLevel
type UserProgress struct {
	UserID             string     `gorm:"primaryKey;size:64" json:"user_id"`
	TotalPoints        int        `json:"total_points"`
	Level              int        `json:"level"`
	CurrentLevelPoints int        `json:"current_level_points"`
	StreakDays         int        `json:"streak_days"`
	LastActivityDate   *time.Time `json:"last_activity_date,omitempty"`
	CompletedActionIDs []string   `gorm:"serializer:json;type:text" json:"completed_action_ids"`
	AssessmentCount    int        `json:"assessment_count"`
	SocialShareCount   int        `json:"social_share_count"`
	CreatedAt          time.Time  `json:"created_at,omitzero"`
	UpdatedAt          time.Time  `json:"updated_at,omitzero"`
}

// NewUserProgress membuat record progress dengan nilai default (dibuat saat
// user pertama kali tercatat, tidak pernah dihapus, hanya bisa di-reset).
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID:             userID,
		Level:              1,
		CompletedActionIDs: []string{},
	}
}

// HasCompletedAction memeriksa keanggotaan actionID pada set aksi yang sudah selesai.
func (p *UserProgress) HasCompletedAction(actionID string) bool {
	for _, id := range p.CompletedActionIDs {
		if id == actionID {
			return true
		}
	}
	return false
}

// ====================================================================================
// Achievements
// ====================================================================================

type AchievementCategory string

const (
	CategoryAssessment AchievementCategory = "assessment"
	CategoryAction     AchievementCategory = "action"
	CategoryStreak     AchievementCategory = "streak"
	CategorySocial     AchievementCategory = "social"
	CategorySecurity   AchievementCategory = "security"
	// CategoryChallenge dipakai oleh katalog achievement khusus challenge 30 hari.
	// Namespace id-nya (prefix "challenge-") disjoint dari katalog umum.
	CategoryChallenge AchievementCategory = "challenge"
)

// AchievementUnlock adalah state unlock per-user untuk satu entri katalog.
// Baris hanya pernah dibuat sekali (transisi false -> true tepat satu kali).
type AchievementUnlock struct {
	UserID        string    `gorm:"primaryKey;size:64" json:"user_id"`
	AchievementID string    `gorm:"primaryKey;size:64" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// AchievementStatus adalah gabungan entri katalog + state unlock user,
// bentuk yang dikirim ke UI layer.
type AchievementStatus struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Points      int                 `json:"points"`
	Unlocked    bool                `json:"unlocked"`
	UnlockedAt  *time.Time          `json:"unlocked_at,omitempty"`
}

// ====================================================================================
// 30-Day Challenge
// ====================================================================================

type ChallengeStatus string

const (
	ChallengeStatusNotStarted ChallengeStatus = "not_started"
	ChallengeStatusActive     ChallengeStatus = "active"
	ChallengeStatusCompleted  ChallengeStatus = "completed"
)

// ChallengeLengthDays adalah panjang tetap rencana challenge.
const ChallengeLengthDays = 30

// Challenge adalah instance rencana 30 hari milik satu user.
// StartDate nil berarti challenge belum dimulai (NotStarted).
// CompletedDayCount adalah max(day) dari task yang sudah selesai, bukan
// jumlah task. Milestone bersifat monotonic: sekali true tidak pernah
// kembali false selama lifetime challenge yang sama (hanya reset yang
// menghapusnya, bersama seluruh state challenge).
type Challenge struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	UserID            string     `gorm:"uniqueIndex;size:64" json:"user_id"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	CurrentDay        int        `json:"current_day"`
	CompletedDayCount int        `json:"completed_day_count"`
	TotalPoints       int        `json:"total_points"`
	MilestoneDay7     bool       `json:"milestone_day_7"`
	MilestoneDay14    bool       `json:"milestone_day_14"`
	MilestoneDay21    bool       `json:"milestone_day_21"`
	MilestoneDay30    bool       `json:"milestone_day_30"`
	CreatedAt         time.Time  `json:"created_at,omitzero"`
	UpdatedAt         time.Time  `json:"updated_at,omitzero"`
}

// Status menurunkan state machine challenge dari field yang tersimpan.
func (c *Challenge) Status() ChallengeStatus {
	if c == nil || c.StartDate == nil {
		return ChallengeStatusNotStarted
	}
	if c.CompletedDayCount >= ChallengeLengthDays {
		return ChallengeStatusCompleted
	}
	return ChallengeStatusActive
}

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
)

// DailyTask adalah satu task dari template 30 hari, di-instantiate per challenge.
// Completed bertransisi false -> true tepat satu kali; menyelesaikan task yang
// sudah selesai adalah no-op (tanpa poin ganda).
type DailyTask struct {
	ChallengeID string         `gorm:"primaryKey;size:36" json:"challenge_id"`
	TaskID      string         `gorm:"primaryKey;size:64" json:"task_id"`
	Day         int            `json:"day"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Difficulty  TaskDifficulty `gorm:"size:16" json:"difficulty"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// ====================================================================================
// Point Ledger
// ====================================================================================

type PointSource string

const (
	SourceTaskCompletion   PointSource = "task_completion"
	SourceActionCompleted  PointSource = "action_completed"
	SourceAssessment       PointSource = "assessment_completed"
	SourceSocialShare      PointSource = "social_share"
	SourceAchievementBonus PointSource = "achievement_bonus"
	SourceChallengeStarted PointSource = "challenge_started"
	SourceManual           PointSource = "manual_adjustment"
)

// PointTransaction adalah catatan append-only untuk setiap perubahan poin,
// supaya total poin selalu bisa diaudit dari riwayatnya.
type PointTransaction struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string      `gorm:"index;size:64" json:"user_id"`
	ChangeAmount int         `json:"change_amount"`
	Source       PointSource `gorm:"size:32" json:"source"`
	RelatedID    string      `gorm:"size:64" json:"related_id,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at,omitzero"`
}

// ====================================================================================
// Snapshot untuk evaluasi achievement
// ====================================================================================

// ProgressSnapshot adalah potret state aggregate yang dilihat oleh predicate
// achievement. Predicate adalah fungsi murni atas snapshot ini; engine tidak
// pernah mengevaluasi dari state yang sedang setengah berubah.
type ProgressSnapshot struct {
	Progress        UserProgress
	Challenge       *Challenge
	ChallengeStreak int
}

// ====================================================================================
// Hasil operasi engine (dikembalikan ke UI layer)
// ====================================================================================

// ProgressUpdate merangkum efek satu mutasi progress: state terbaru, poin yang
// baru diberikan, fakta level-up, dan achievement yang baru terbuka.
type ProgressUpdate struct {
	Progress      *UserProgress `json:"progress"`
	PointsAwarded int           `json:"points_awarded"`
	LeveledUp     bool          `json:"leveled_up"`
	NewlyUnlocked []string      `json:"newly_unlocked_achievements,omitempty"`
}

// ChallengeState adalah view lengkap challenge untuk UI layer.
type ChallengeState struct {
	Status             ChallengeStatus `json:"status"`
	Challenge          *Challenge      `json:"challenge,omitempty"`
	Tasks              []DailyTask     `json:"tasks"`
	ProgressPercentage int             `json:"progress_percentage"`
	StreakDays         int             `json:"streak_days"`
	PointsAwarded      int             `json:"points_awarded,omitempty"`
	NewlyUnlocked      []string        `json:"newly_unlocked_achievements,omitempty"`
}

// ====================================================================================
// Input structs untuk API
// ====================================================================================

// AddPointsInput adalah payload untuk penambahan poin langsung dari UI layer
// (misal feature lain yang memberi reward). Poin negatif ditolak di service
// sebagai precondition violation, tidak pernah di-clamp diam-diam.
type AddPointsInput struct {
	Points int    `json:"points" validate:"gte=0"`
	Source string `json:"source" validate:"required,oneof=task_completion action_completed assessment_completed social_share achievement_bonus challenge_started manual_adjustment"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=255"`
}

// Response standar untuk API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
