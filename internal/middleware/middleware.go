// internal/middleware/middleware.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"  // Middleware untuk kompresi response (Gzip)
	"github.com/gofiber/fiber/v2/middleware/cors"      // Middleware untuk Cross-Origin Resource Sharing
	"github.com/gofiber/fiber/v2/middleware/limiter"   // Middleware untuk membatasi rate request
	"github.com/gofiber/fiber/v2/middleware/recover"   // Middleware untuk menangkap panic
	"github.com/gofiber/fiber/v2/middleware/requestid" // Middleware untuk menambahkan ID unik ke request
	"github.com/rs/zerolog"                            // Digunakan oleh logger request
	zlog "github.com/rs/zerolog/log"                   // Logger global Zerolog
)

// SetupGlobalMiddleware mendaftarkan middleware standar yang akan dijalankan
// untuk semua request ke aplikasi Fiber. Urutan pendaftaran penting.
func SetupGlobalMiddleware(app *fiber.App) {
	// Recover paling awal: tangkap panic di handler atau middleware lain
	// agar server tidak crash; klien menerima 500.
	app.Use(recover.New())
	zlog.Info().Msg("Recover middleware registered")

	// Menambahkan header 'X-Request-ID' ke setiap request (jika belum ada)
	// dan menyimpannya di c.Locals("requestid"). Berguna untuk tracing log.
	app.Use(requestid.New())
	zlog.Info().Msg("RequestID middleware registered")

	app.Use(cors.New(cors.Config{
		// Ganti dengan daftar origin frontend Anda di production.
		AllowOrigins: "http://localhost:5173, http://127.0.0.1:5173, http://localhost:3001",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
	}))
	zlog.Info().Msg("CORS middleware registered")

	// Membatasi jumlah request dari IP yang sama dalam satu menit.
	app.Use(limiter.New(limiter.Config{
		Max:               200,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))
	zlog.Info().Msg("Rate limiter middleware registered")

	// Logger request custom berbasis Zerolog.
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		requestID := ""
		if idStr, ok := c.Locals("requestid").(string); ok {
			requestID = idStr
		}

		// Level log mengikuti status code / adanya error dari handler.
		var logEvent *zerolog.Event
		if err != nil {
			logEvent = zlog.Warn().Err(err)
		} else {
			logEvent = zlog.Info()
			if statusCode >= 500 {
				logEvent = zlog.Error()
			} else if statusCode >= 400 {
				logEvent = zlog.Warn()
			}
		}

		loggerWithFields := logEvent.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", statusCode).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent))

		if requestID != "" {
			loggerWithFields = loggerWithFields.Str("request_id", requestID)
		}

		loggerWithFields.Msg("Request handled")

		// Kembalikan error (jika ada) agar ditangani ErrorHandler global.
		return err
	})
	zlog.Info().Msg("Request logger middleware registered")

	// Kompresi response (Gzip) jika klien mendukungnya.
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	zlog.Info().Msg("Compress middleware registered")
}
