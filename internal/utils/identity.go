// internal/utils/identity.go
package utils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Identitas user datang dari collaborator eksternal (gateway) dan disimpan ke
// c.Locals oleh middleware.RequireUser. Engine ini tidak melakukan
// autentikasi sendiri.

// UserIDLocalKey adalah kunci c.Locals tempat middleware menyimpan user id.
const UserIDLocalKey = "userID"

// ExtractUserID mengambil user id dari context request Fiber. Mengembalikan
// error jika middleware RequireUser belum berjalan untuk route ini.
func ExtractUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(UserIDLocalKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user id not found in request context")
	}
	return userID, nil
}
