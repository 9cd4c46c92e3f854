package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/configs"
	v1 "github.com/privguard/progress-engine-be/internal/api/v1"
	"github.com/privguard/progress-engine-be/internal/api/v1/handlers"
	"github.com/privguard/progress-engine-be/internal/database"
	applogger "github.com/privguard/progress-engine-be/internal/logger"
	appmiddleware "github.com/privguard/progress-engine-be/internal/middleware"
	"github.com/privguard/progress-engine-be/internal/repository"
	"github.com/privguard/progress-engine-be/internal/service"
	zlog "github.com/rs/zerolog/log"
)

// main adalah fungsi entry point aplikasi Go.
func main() {
	// --- Langkah 0: Load Konfigurasi dari .env ---
	// Harus dijalankan *sebelum* komponen lain yang bergantung pada env vars.
	configs.LoadConfig()

	// --- Langkah 1: Setup Logger (Zerolog) ---
	logCloser := applogger.SetupLogger()
	if logCloser != nil {
		defer func() {
			zlog.Info().Msg("Closing log file...")
			if err := logCloser.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "[ERROR] Failed to close log file: %v\n", err)
			}
		}()
	}
	zlog.Info().Msg("Configuration loaded")

	// --- Langkah 2: Local Store (SQLite) ---
	// Local store adalah sumber kebenaran engine; tanpa ini aplikasi tidak jalan.
	localDB, err := database.NewLocalDB(os.Getenv("LOCAL_DB_PATH"))
	if err != nil {
		zlog.Fatal().Err(err).Msg("Could not open the local store")
	}
	localRepo := repository.NewLocalStateRepository(localDB)

	// --- Langkah 3: Mirror Remote (Postgres, opsional) ---
	// Mirror hanya backup/restore. Tidak terkonfigurasi atau gagal connect ->
	// engine tetap jalan murni lokal, sync dimatikan.
	var remoteProgress repository.RemoteProgressRepository
	var remoteChallenge repository.RemoteChallengeRepository
	var remoteUnlocks repository.RemoteAchievementRepository
	if configs.RemoteMirrorConfigured() {
		dbPool, err := database.NewRemotePool()
		if err != nil {
			zlog.Warn().Err(err).Msg("Could not connect to the remote mirror, continuing in local-only mode")
		} else {
			defer dbPool.Close()
			remoteProgress = repository.NewRemoteProgressRepository(dbPool)
			remoteChallenge = repository.NewRemoteChallengeRepository(dbPool)
			remoteUnlocks = repository.NewRemoteAchievementRepository(dbPool)
			zlog.Info().Msg("Remote mirror connection pool established")
		}
	}

	// --- Langkah 4: Inisialisasi Lapisan Service ---
	syncService := service.NewSyncService(localRepo, remoteProgress, remoteChallenge, remoteUnlocks)
	defer syncService.Close()

	locks := &service.UserLocks{}
	ledger := service.NewPointLedger(localRepo, nil)
	engine := service.NewAchievementEngine(localRepo, ledger)
	progressService := service.NewProgressService(localRepo, ledger, engine, syncService, locks)
	challengeService := service.NewChallengeService(localRepo, ledger, engine, syncService, locks)
	zlog.Info().Msg("Services initialized")

	// --- Langkah 5: Inisialisasi Lapisan Handler ---
	progressHandler := handlers.NewProgressHandler(progressService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	zlog.Info().Msg("Handlers initialized")

	// --- Langkah 6: Setup Aplikasi Fiber ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	zlog.Info().Msg("Fiber app initialized")

	appmiddleware.SetupGlobalMiddleware(app)

	v1.SetupRoutes(app, progressHandler, challengeHandler)
	zlog.Info().Msg("API v1 routes registered")

	// --- Langkah 7: Start Server HTTP ---
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "3000"
	}

	zlog.Info().Msgf("Server is starting on port %s...", appPort)
	startErr := app.Listen(fmt.Sprintf(":%s", appPort))
	if startErr != nil {
		zlog.Fatal().Err(startErr).Msg("Failed to start server")
	}
}
