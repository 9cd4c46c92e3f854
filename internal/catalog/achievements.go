// internal/catalog/achievements.go
package catalog

import (
	"github.com/privguard/progress-engine-be/internal/models"
)

// File ini berisi katalog achievement yang bersifat statis dan data-driven:
// menambah achievement baru cukup menambah satu entri tabel, bukan menambah
// cabang control-flow di engine. Predicate adalah fungsi murni atas
// models.ProgressSnapshot; engine mengevaluasinya secara generik dalam satu loop.

// AchievementDef adalah satu entri katalog: identitas, reward poin, dan
// predicate unlock-nya.
type AchievementDef struct {
	ID          string
	Title       string
	Description string
	Category    models.AchievementCategory
	Points      int
	Predicate   func(s models.ProgressSnapshot) bool
}

// GeneralAchievements adalah katalog umum, dievaluasi dari slice UserProgress.
// Id di sini TIDAK boleh memakai prefix "challenge-" (namespace katalog challenge).
var GeneralAchievements = []AchievementDef{
	{
		ID:          "first-assessment",
		Title:       "Privacy Aware",
		Description: "Complete your first privacy assessment",
		Category:    models.CategoryAssessment,
		Points:      25,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.AssessmentCount >= 1 },
	},
	{
		ID:          "assessment-expert",
		Title:       "Self Examiner",
		Description: "Complete five privacy assessments",
		Category:    models.CategoryAssessment,
		Points:      50,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.AssessmentCount >= 5 },
	},
	{
		ID:          "first-action",
		Title:       "First Step",
		Description: "Complete your first privacy action",
		Category:    models.CategoryAction,
		Points:      25,
		Predicate:   func(s models.ProgressSnapshot) bool { return len(s.Progress.CompletedActionIDs) >= 1 },
	},
	{
		ID:          "action-taker",
		Title:       "Action Taker",
		Description: "Complete five privacy actions",
		Category:    models.CategoryAction,
		Points:      50,
		Predicate:   func(s models.ProgressSnapshot) bool { return len(s.Progress.CompletedActionIDs) >= 5 },
	},
	{
		ID:          "action-master",
		Title:       "Privacy Guardian",
		Description: "Complete fifteen privacy actions",
		Category:    models.CategoryAction,
		Points:      100,
		Predicate:   func(s models.ProgressSnapshot) bool { return len(s.Progress.CompletedActionIDs) >= 15 },
	},
	{
		ID:          "streak-3",
		Title:       "Warming Up",
		Description: "Stay active three days in a row",
		Category:    models.CategoryStreak,
		Points:      25,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.StreakDays >= 3 },
	},
	{
		ID:          "streak-7",
		Title:       "Consistent",
		Description: "Stay active seven days in a row",
		Category:    models.CategoryStreak,
		Points:      50,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.StreakDays >= 7 },
	},
	{
		ID:          "streak-30",
		Title:       "Unstoppable",
		Description: "Stay active thirty days in a row",
		Category:    models.CategoryStreak,
		Points:      200,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.StreakDays >= 30 },
	},
	{
		ID:          "first-share",
		Title:       "Spread the Word",
		Description: "Share privacy content for the first time",
		Category:    models.CategorySocial,
		Points:      25,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.SocialShareCount >= 1 },
	},
	{
		ID:          "privacy-advocate",
		Title:       "Privacy Advocate",
		Description: "Share privacy content five times",
		Category:    models.CategorySocial,
		Points:      50,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.SocialShareCount >= 5 },
	},
	{
		ID:          "level-5",
		Title:       "Security Veteran",
		Description: "Reach level five",
		Category:    models.CategorySecurity,
		Points:      100,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.Level >= 5 },
	},
	{
		ID:          "points-500",
		Title:       "Point Collector",
		Description: "Accumulate five hundred points",
		Category:    models.CategorySecurity,
		Points:      75,
		Predicate:   func(s models.ProgressSnapshot) bool { return s.Progress.TotalPoints >= 500 },
	},
}

// ChallengeAchievements adalah katalog khusus challenge 30 hari, dievaluasi
// dari slice Challenge pada snapshot. Semua id wajib memakai prefix
// "challenge-" supaya tidak pernah bentrok dengan katalog umum.
var ChallengeAchievements = []AchievementDef{
	{
		ID:          "challenge-week-1",
		Title:       "First Week Done",
		Description: "Reach day 7 of the 30-day challenge",
		Category:    models.CategoryChallenge,
		Points:      50,
		Predicate: func(s models.ProgressSnapshot) bool {
			return s.Challenge != nil && s.Challenge.CompletedDayCount >= 7
		},
	},
	{
		ID:          "challenge-week-2",
		Title:       "Halfway There",
		Description: "Reach day 14 of the 30-day challenge",
		Category:    models.CategoryChallenge,
		Points:      75,
		Predicate: func(s models.ProgressSnapshot) bool {
			return s.Challenge != nil && s.Challenge.CompletedDayCount >= 14
		},
	},
	{
		ID:          "challenge-week-3",
		Title:       "Third Week Strong",
		Description: "Reach day 21 of the 30-day challenge",
		Category:    models.CategoryChallenge,
		Points:      100,
		Predicate: func(s models.ProgressSnapshot) bool {
			return s.Challenge != nil && s.Challenge.CompletedDayCount >= 21
		},
	},
	{
		ID:          "challenge-complete",
		Title:       "Challenge Champion",
		Description: "Complete all 30 days of the challenge",
		Category:    models.CategoryChallenge,
		Points:      300,
		Predicate: func(s models.ProgressSnapshot) bool {
			return s.Challenge != nil && s.Challenge.CompletedDayCount >= 30
		},
	},
	{
		ID:          "challenge-streak-7",
		Title:       "Committed",
		Description: "Keep the challenge going for seven days",
		Category:    models.CategoryChallenge,
		Points:      50,
		Predicate: func(s models.ProgressSnapshot) bool {
			return s.Challenge != nil && s.ChallengeStreak >= 7
		},
	},
}

// AllAchievements menggabungkan kedua katalog (untuk evaluasi satu pass dan
// untuk query daftar achievement ke UI).
func AllAchievements() []AchievementDef {
	all := make([]AchievementDef, 0, len(GeneralAchievements)+len(ChallengeAchievements))
	all = append(all, GeneralAchievements...)
	all = append(all, ChallengeAchievements...)
	return all
}

// FindAchievement mencari satu entri katalog berdasarkan id. Mengembalikan
// nil jika tidak ada.
func FindAchievement(id string) *AchievementDef {
	for i := range GeneralAchievements {
		if GeneralAchievements[i].ID == id {
			return &GeneralAchievements[i]
		}
	}
	for i := range ChallengeAchievements {
		if ChallengeAchievements[i].ID == id {
			return &ChallengeAchievements[i]
		}
	}
	return nil
}
