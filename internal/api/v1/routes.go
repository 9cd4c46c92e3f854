package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/api/v1/handlers"
	"github.com/privguard/progress-engine-be/internal/middleware"
)

// File ini bertanggung jawab untuk mendefinisikan dan mendaftarkan semua rute
// (endpoints) untuk API versi 1 (/api/v1).

// SetupRoutes mengkonfigurasi dan mendaftarkan semua rute API v1 ke instance
// aplikasi Fiber. Menerima instance Fiber dan semua handler sebagai dependensi.
func SetupRoutes(
	app *fiber.App,
	progressHandler *handlers.ProgressHandler,
	challengeHandler *handlers.ChallengeHandler,
) {
	api := app.Group("/api/v1")

	// =========================================================================
	// Rute Progress (Memerlukan Identitas User)
	// =========================================================================
	progress := api.Group("/progress", middleware.RequireUser())
	{
		// GET  /api/v1/progress - State progres gamifikasi user
		progress.Get("/", progressHandler.GetProgress)
		// POST /api/v1/progress/points - Menambahkan poin langsung
		progress.Post("/points", progressHandler.AddPoints)
		// GET  /api/v1/progress/points/history - Riwayat transaksi poin (paginasi)
		progress.Get("/points/history", progressHandler.GetPointHistory)
		// POST /api/v1/progress/actions/:actionId/complete - Menyelesaikan aksi privasi
		progress.Post("/actions/:actionId/complete", progressHandler.CompleteAction)
		// POST /api/v1/progress/assessments/complete - Mencatat assessment selesai
		progress.Post("/assessments/complete", progressHandler.CompleteAssessment)
		// POST /api/v1/progress/shares - Mencatat share konten privasi
		progress.Post("/shares", progressHandler.ShareContent)
		// GET  /api/v1/progress/achievements - Daftar achievement + status unlock
		progress.Get("/achievements", progressHandler.GetAchievements)
		// POST /api/v1/progress/reset - Reset seluruh progres user
		progress.Post("/reset", progressHandler.ResetProgress)
	}

	// =========================================================================
	// Rute Challenge 30 Hari (Memerlukan Identitas User)
	// =========================================================================
	challenge := api.Group("/challenge", middleware.RequireUser())
	{
		// GET  /api/v1/challenge - State challenge lengkap dengan task
		challenge.Get("/", challengeHandler.GetChallenge)
		// POST /api/v1/challenge/start - Memulai challenge
		challenge.Post("/start", challengeHandler.StartChallenge)
		// POST /api/v1/challenge/reset - Membuang challenge dan buat rencana baru
		challenge.Post("/reset", challengeHandler.ResetChallenge)
		// POST /api/v1/challenge/tasks/:taskId/complete - Menyelesaikan task
		challenge.Post("/tasks/:taskId/complete", challengeHandler.CompleteTask)
		// GET  /api/v1/challenge/tasks/today - Task untuk hari berjalan
		challenge.Get("/tasks/today", challengeHandler.CurrentDayTasks)
	}

	// =========================================================================
	// Rute Utilitas (Publik)
	// =========================================================================
	// GET /api/v1/health - Endpoint publik untuk memeriksa status API
	api.Get("/health", HealthCheck)
}

// HealthCheck godoc
// @Summary Check API Health Status
// @Description Public endpoint to verify that the API is running and responsive.
// @Tags Public, Health
// @ID health-check-v1
// @Produce json
// @Success 200 {object} map[string]string "{"status":"UP"}"
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "UP"})
}
