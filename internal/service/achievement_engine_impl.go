// internal/service/achievement_engine_impl.go
package service

import (
	"context"
	"fmt"

	"github.com/privguard/progress-engine-be/internal/catalog"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

type achievementEngine struct {
	localRepo repository.LocalStateRepository
	ledger    *PointLedger
}

// NewAchievementEngine membuat engine evaluasi achievement data-driven.
func NewAchievementEngine(localRepo repository.LocalStateRepository, ledger *PointLedger) AchievementEngine {
	return &achievementEngine{localRepo: localRepo, ledger: ledger}
}

// Evaluate menjalankan satu pass atas seluruh katalog terhadap snapshot yang
// sudah final (mutasi pemicunya sudah tersimpan). Predicate hanya membaca
// snapshot, jadi urutan evaluasi antar-entri tidak berpengaruh pada hasil.
//
// Bonus poin dari unlock baru diberikan sebagai SATU award gabungan dan
// sengaja TIDAK memicu evaluasi ulang: achievement berbasis total poin baru
// akan terbuka pada aktivitas berikutnya, bukan lewat rekursi.
func (e *achievementEngine) Evaluate(ctx context.Context, userID string, snapshot models.ProgressSnapshot) ([]string, error) {
	unlocked, err := e.localRepo.GetUnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.ledger.Now()
	var newUnlocks []models.AchievementUnlock
	var newlyUnlocked []string
	bonus := 0

	for _, def := range catalog.AllAchievements() {
		if unlocked[def.ID] {
			continue
		}
		if !def.Predicate(snapshot) {
			continue
		}
		newUnlocks = append(newUnlocks, models.AchievementUnlock{
			UserID:        userID,
			AchievementID: def.ID,
			UnlockedAt:    now,
		})
		newlyUnlocked = append(newlyUnlocked, def.ID)
		bonus += def.Points
	}

	if len(newUnlocks) == 0 {
		return nil, nil
	}

	if err := e.localRepo.SaveUnlocks(ctx, newUnlocks); err != nil {
		return nil, err
	}

	if bonus > 0 {
		progress, err := e.localRepo.GetProgress(ctx, userID)
		if err != nil {
			return nil, err
		}
		notes := fmt.Sprintf("bonus for %d achievement(s)", len(newlyUnlocked))
		if _, err := e.ledger.Apply(ctx, progress, bonus, models.SourceAchievementBonus, "", notes); err != nil {
			return nil, err
		}
	}

	zlog.Info().
		Str("user_id", userID).
		Strs("achievements", newlyUnlocked).
		Int("bonus_points", bonus).
		Msg("Achievements unlocked")
	return newlyUnlocked, nil
}
