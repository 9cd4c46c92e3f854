// internal/utils/test_utils/identity_middleware_mock.go
package test_utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/utils"
)

// MockUserMiddleware simulates the identity middleware by setting the user id
// in the Fiber context the same way middleware.RequireUser would.
func MockUserMiddleware(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.UserIDLocalKey, userID)
		return c.Next()
	}
}
