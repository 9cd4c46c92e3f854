// internal/middleware/identity.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

// HeaderUserID adalah header identitas yang diisi oleh gateway/reverse proxy
// di depan service ini. Autentikasi terjadi di sana; service ini hanya butuh
// identitas user yang sudah terverifikasi.
const HeaderUserID = "X-User-ID"

// RequireUser memastikan request membawa identitas user dan menyimpannya di
// c.Locals agar handler selanjutnya bisa membacanya lewat utils.ExtractUserID.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" {
			zlog.Warn().Str("path", c.Path()).Str("ip", c.IP()).Msg("Request without user identity header")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Unauthorized: Missing user identity",
			})
		}

		c.Locals(utils.UserIDLocalKey, userID)
		return c.Next()
	}
}
