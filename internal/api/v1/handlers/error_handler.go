// internal/api/v1/handlers/error_handler.go
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/service"
	"github.com/rs/zerolog/log"
)

// statusForServiceError memetakan error sentinel engine ke status HTTP.
// false berarti error tidak dikenal dan diperlakukan sebagai kegagalan internal.
func statusForServiceError(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrNegativePoints):
		return fiber.StatusBadRequest, true
	case errors.Is(err, service.ErrTaskNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, service.ErrChallengeAlreadyStarted),
		errors.Is(err, service.ErrChallengeNotStarted):
		return fiber.StatusConflict, true
	}
	return fiber.StatusInternalServerError, false
}

// ErrorHandler custom untuk Fiber. Selain fiber.Error dan error validasi,
// error sentinel dari service layer yang lolos sampai sini tetap dipetakan
// ke status yang benar, bukan 500 generik.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &e):
		code = e.Code
		message = e.Message
	case errors.As(err, &ve):
		code = fiber.StatusBadRequest
		message = "Validation Failed"
	default:
		if mapped, known := statusForServiceError(err); known {
			code = mapped
			message = err.Error()
		}
	}

	// Middleware request logger sudah mencatat ringkasannya, ini detailnya.
	log.Error().Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status_sent", code).
		Msg("Error occurred during request processing")

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Status(code).JSON(models.Response{
		Success: false,
		Message: message,
	})
}
