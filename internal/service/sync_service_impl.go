// internal/service/sync_service_impl.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/privguard/progress-engine-be/internal/repository"
	zlog "github.com/rs/zerolog/log"
)

// defaultQueueSize membatasi antrian push. Push yang ter-drop aman: state
// lokal tetap sumber kebenaran dan push berikutnya membawa full state.
const defaultQueueSize = 256

type syncService struct {
	localRepo       repository.LocalStateRepository
	remoteProgress  repository.RemoteProgressRepository
	remoteChallenge repository.RemoteChallengeRepository
	remoteUnlocks   repository.RemoteAchievementRepository

	queue    chan string
	pending  sync.Map // userID -> struct{}, dedupe antrian
	hydrated sync.Map // userID -> *sync.Once, restore satu kali per proses
	wg       sync.WaitGroup
	once     sync.Once

	// disabled true saat mirror remote tidak dikonfigurasi; seluruh operasi
	// jadi no-op dan engine berjalan murni lokal.
	disabled bool
}

// NewSyncService membuat sync service dengan satu worker background. Kalau
// salah satu repo remote nil, service berjalan dalam mode disabled.
func NewSyncService(
	localRepo repository.LocalStateRepository,
	remoteProgress repository.RemoteProgressRepository,
	remoteChallenge repository.RemoteChallengeRepository,
	remoteUnlocks repository.RemoteAchievementRepository,
) SyncService {
	s := &syncService{
		localRepo:       localRepo,
		remoteProgress:  remoteProgress,
		remoteChallenge: remoteChallenge,
		remoteUnlocks:   remoteUnlocks,
	}
	if remoteProgress == nil || remoteChallenge == nil || remoteUnlocks == nil {
		s.disabled = true
		zlog.Info().Msg("Remote mirror not configured, sync disabled")
		return s
	}

	s.queue = make(chan string, defaultQueueSize)
	s.wg.Add(1)
	go s.worker()
	return s
}

// EnsureHydrated menarik state user dari mirror remote tepat satu kali per
// proses, sebelum operasi pertamanya. Caller wajib memanggilnya sambil
// memegang lock per-user yang sama dengan jalur mutasi; sync.Once membuat
// caller lain menunggu hydration yang sedang berjalan, bukan melewatinya.
// Kegagalan remote hanya di-log: user lanjut dengan state lokal apa adanya.
func (s *syncService) EnsureHydrated(ctx context.Context, userID string) {
	if s.disabled {
		return
	}
	gate, _ := s.hydrated.LoadOrStore(userID, &sync.Once{})
	gate.(*sync.Once).Do(func() {
		if err := s.loadFromRemote(ctx, userID); err != nil {
			zlog.Warn().Err(err).Str("user_id", userID).Msg("Remote hydration failed, continuing with local state")
		}
	})
}

// loadFromRemote menimpa state lokal dengan isi mirror, hanya untuk record
// yang memang ada di remote. Remote kosong berarti user baru: tidak ada yang
// ditimpa.
func (s *syncService) loadFromRemote(ctx context.Context, userID string) error {
	progress, err := s.remoteProgress.GetUserProgress(ctx, userID)
	if err != nil {
		return err
	}
	if progress != nil {
		if err := s.localRepo.SaveProgress(ctx, progress); err != nil {
			return err
		}
	}

	unlocks, err := s.remoteUnlocks.GetUnlocks(ctx, userID)
	if err != nil {
		return err
	}
	if len(unlocks) > 0 {
		if err := s.localRepo.SaveUnlocks(ctx, unlocks); err != nil {
			return err
		}
	}

	challenge, err := s.remoteChallenge.GetChallenge(ctx, userID)
	if err != nil {
		return err
	}
	if challenge != nil {
		if err := s.localRepo.SaveChallenge(ctx, challenge); err != nil {
			return err
		}
		tasks, err := s.remoteChallenge.GetDailyTasks(ctx, challenge.ID)
		if err != nil {
			return err
		}
		if err := s.localRepo.ReplaceTasks(ctx, challenge.ID, tasks); err != nil {
			return err
		}
	}

	zlog.Debug().Str("user_id", userID).Msg("User state hydrated from remote mirror")
	return nil
}

// EnqueuePush menjadwalkan push full-state untuk user, dengan dedupe: user
// yang sudah antre tidak antre dua kali. Tidak pernah memblokir caller.
func (s *syncService) EnqueuePush(userID string) {
	if s.disabled {
		return
	}
	if _, already := s.pending.LoadOrStore(userID, struct{}{}); already {
		return
	}
	select {
	case s.queue <- userID:
	default:
		s.pending.Delete(userID)
		zlog.Warn().Str("user_id", userID).Msg("Sync queue full, push dropped")
	}
}

func (s *syncService) worker() {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Interface("panic", r).Msg("Sync worker panicked")
		}
	}()

	for userID := range s.queue {
		s.pending.Delete(userID)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s.pushUser(ctx, userID); err != nil {
			// Fire-and-forget: gagal push tidak pernah menggagalkan operasi
			// user. Push berikutnya membawa full state terbaru.
			zlog.Warn().Err(err).Str("user_id", userID).Msg("Push to remote mirror failed")
		}
		cancel()
	}
}

// pushUser menulis seluruh state user ke mirror (whole-record, local menang).
func (s *syncService) pushUser(ctx context.Context, userID string) error {
	progress, err := s.localRepo.GetProgress(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.remoteProgress.UpsertUserProgress(ctx, progress); err != nil {
		return err
	}

	unlocks, err := s.localRepo.GetUnlocks(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.remoteUnlocks.UpsertUnlocks(ctx, unlocks); err != nil {
		return err
	}

	challenge, err := s.localRepo.GetChallenge(ctx, userID)
	if err != nil {
		return err
	}
	if challenge == nil {
		return s.remoteChallenge.DeleteChallenge(ctx, userID)
	}
	// Setelah reset, id challenge berganti; buang instance lama di mirror
	// supaya task-nya tidak jadi baris yatim.
	remoteChallenge, err := s.remoteChallenge.GetChallenge(ctx, userID)
	if err != nil {
		return err
	}
	if remoteChallenge != nil && remoteChallenge.ID != challenge.ID {
		if err := s.remoteChallenge.DeleteChallenge(ctx, userID); err != nil {
			return err
		}
	}
	if err := s.remoteChallenge.UpsertChallenge(ctx, challenge); err != nil {
		return err
	}
	tasks, err := s.localRepo.GetTasks(ctx, challenge.ID)
	if err != nil {
		return err
	}
	return s.remoteChallenge.UpsertDailyTasks(ctx, tasks)
}

// Close menutup antrian dan menunggu worker selesai men-drain sisa push.
func (s *syncService) Close() {
	if s.disabled {
		return
	}
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}
