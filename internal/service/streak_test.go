// internal/service/streak_test.go
package service

import (
	"testing"
	"time"

	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)
	sameDayMorning := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		current      int
		lastActivity *time.Time
		expected     int
	}{
		{name: "First ever activity", current: 0, lastActivity: nil, expected: 1},
		{name: "Second activity same day keeps streak", current: 4, lastActivity: &sameDayMorning, expected: 4},
		{name: "Same day with zero streak normalizes to one", current: 0, lastActivity: &sameDayMorning, expected: 1},
		{name: "Consecutive day increments", current: 4, lastActivity: &yesterday, expected: 5},
		{name: "Gap resets to one", current: 10, lastActivity: &threeDaysAgo, expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextStreak(tc.current, tc.lastActivity, today))
		})
	}
}

func TestNextStreak_CalendarDayNotDuration(t *testing.T) {
	// 23:00 kemarin -> 01:00 hari ini hanya 2 jam, tapi tetap hari berikutnya.
	last := time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, NextStreak(2, &last, today))
}

func TestChallengeStreakDays(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Not started", func(t *testing.T) {
		assert.Equal(t, 0, ChallengeStreakDays(nil, start))
		assert.Equal(t, 0, ChallengeStreakDays(&models.Challenge{}, start))
	})

	t.Run("Start day counts as day one", func(t *testing.T) {
		c := &models.Challenge{StartDate: &start}
		assert.Equal(t, 1, ChallengeStreakDays(c, start))
	})

	t.Run("Week in", func(t *testing.T) {
		c := &models.Challenge{StartDate: &start}
		assert.Equal(t, 7, ChallengeStreakDays(c, start.AddDate(0, 0, 6)))
	})

	t.Run("Capped at challenge length", func(t *testing.T) {
		c := &models.Challenge{StartDate: &start}
		assert.Equal(t, models.ChallengeLengthDays, ChallengeStreakDays(c, start.AddDate(0, 0, 90)))
	})
}
