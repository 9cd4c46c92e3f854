package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/api/v1/handlers"
	"github.com/privguard/progress-engine-be/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Error sentinel service layer yang dikembalikan mentah dari handler tetap
// dipetakan ke status yang benar oleh ErrorHandler global, bukan 500 generik.
func TestErrorHandler_MapsDomainSentinels(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error { return service.ErrChallengeNotStarted })
	app.Get("/rejected", func(c *fiber.Ctx) error { return service.ErrNegativePoints })
	app.Get("/unknown", func(c *fiber.Ctx) error { return assert.AnError })

	resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.False(t, body["success"].(bool))
	assert.Equal(t, service.ErrChallengeNotStarted.Error(), body["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/rejected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Error tak dikenal tidak membocorkan detail internal.
	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body = decodeResponse(t, resp)
	assert.Equal(t, "Internal Server Error", body["message"])
}
