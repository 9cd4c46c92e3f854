// internal/service/streak.go
package service

import (
	"time"

	"github.com/privguard/progress-engine-be/internal/models"
)

// NextStreak menghitung nilai streak berikutnya dari streak sekarang, tanggal
// aktivitas terakhir, dan hari ini. Fungsi murni; seluruh perbandingan pakai
// granularity hari kalender lokal, bukan selisih 24 jam.
//
// Aturan:
//   - belum pernah beraktivitas  -> 1
//   - aktivitas kedua di hari yang sama -> streak tidak berubah (minimal 1)
//   - aktivitas tepat sehari setelahnya -> streak + 1
//   - ada gap >= 1 hari penuh -> reset ke 1
func NextStreak(current int, lastActivity *time.Time, today time.Time) int {
	if lastActivity == nil {
		return 1
	}
	if sameCalendarDay(*lastActivity, today) {
		if current < 1 {
			return 1
		}
		return current
	}
	if sameCalendarDay(lastActivity.AddDate(0, 0, 1), today) {
		return current + 1
	}
	return 1
}

// ChallengeStreakDays menghitung streak challenge: jumlah hari kalender sejak
// StartDate (inklusif), di-cap pada panjang challenge. Challenge yang belum
// dimulai punya streak 0.
func ChallengeStreakDays(challenge *models.Challenge, today time.Time) int {
	if challenge == nil || challenge.StartDate == nil {
		return 0
	}
	start := truncateToDay(*challenge.StartDate)
	days := int(truncateToDay(today).Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	if days > models.ChallengeLengthDays {
		return models.ChallengeLengthDays
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
