// internal/service/ledger.go
package service

import (
	"context"
	"time"

	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/repository"
)

// PointLedger adalah satu-satunya jalur perubahan poin. Setiap award lewat
// sini supaya invariant level/streak dan riwayat transaksi selalu konsisten.
type PointLedger struct {
	localRepo repository.LocalStateRepository
	now       func() time.Time
}

// NewPointLedger membuat ledger; nowFn bisa di-inject untuk test, nil berarti
// pakai time.Now.
func NewPointLedger(localRepo repository.LocalStateRepository, nowFn func() time.Time) *PointLedger {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &PointLedger{localRepo: localRepo, now: nowFn}
}

// Now mengekspos clock ledger supaya service satu paket memakai waktu yang sama.
func (l *PointLedger) Now() time.Time {
	return l.now()
}

// Apply menambahkan poin ke progres yang sudah dimuat caller, memperbarui
// streak dan level, lalu menyimpan progres + mencatat transaksi. Caller boleh
// memutasi field domain lain (set action, counter) pada progress yang sama
// sebelum memanggil Apply sehingga semuanya commit dalam satu Save.
// Mengembalikan apakah award ini menyebabkan level-up.
func (l *PointLedger) Apply(ctx context.Context, progress *models.UserProgress, points int, source models.PointSource, relatedID, notes string) (bool, error) {
	if points < 0 {
		return false, ErrNegativePoints
	}

	now := l.now()
	previousLevel := progress.Level

	progress.StreakDays = NextStreak(progress.StreakDays, progress.LastActivityDate, now)
	progress.LastActivityDate = &now

	progress.TotalPoints += points
	progress.Level = progress.TotalPoints/models.PointsPerLevel + 1
	progress.CurrentLevelPoints = progress.TotalPoints % models.PointsPerLevel

	if err := l.localRepo.SaveProgress(ctx, progress); err != nil {
		return false, err
	}

	// Mutasi tanpa reward (aksi yang diulang) cukup menyegarkan streak dan
	// last activity; riwayat tidak diisi transaksi nol.
	if points == 0 {
		return false, nil
	}

	trx := &models.PointTransaction{
		UserID:       progress.UserID,
		ChangeAmount: points,
		Source:       source,
		RelatedID:    relatedID,
		Notes:        notes,
		CreatedAt:    now,
	}
	if err := l.localRepo.RecordTransaction(ctx, trx); err != nil {
		return false, err
	}

	return progress.Level > previousLevel, nil
}

// Reset mengembalikan progres ke nilai default dan mencatat satu transaksi
// negatif sebesar saldo yang dihapus, supaya riwayat tetap bisa diaudit.
func (l *PointLedger) Reset(ctx context.Context, progress *models.UserProgress) error {
	removed := progress.TotalPoints
	now := l.now()

	fresh := models.NewUserProgress(progress.UserID)
	fresh.CreatedAt = progress.CreatedAt
	*progress = *fresh

	if err := l.localRepo.SaveProgress(ctx, progress); err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}
	trx := &models.PointTransaction{
		UserID:       progress.UserID,
		ChangeAmount: -removed,
		Source:       models.SourceManual,
		Notes:        "progress reset",
		CreatedAt:    now,
	}
	return l.localRepo.RecordTransaction(ctx, trx)
}
