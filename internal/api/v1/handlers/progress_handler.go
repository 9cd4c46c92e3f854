// internal/api/v1/handlers/progress_handler.go
package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/service"
	"github.com/privguard/progress-engine-be/internal/utils"
	"github.com/rs/zerolog/log"
)

type ProgressHandler struct {
	ProgressService service.ProgressService
	Validate        *validator.Validate
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		ProgressService: progressService,
		Validate:        validator.New(),
	}
}

// --- Error Handling Helper (dipakai juga oleh ChallengeHandler) ---
// Pemetaan sentinel -> status dibagi dengan ErrorHandler global di
// error_handler.go supaya kedua jalur konsisten.
func handleServiceError(c *fiber.Ctx, err error, operation string) error {
	log := log.With().Str("operation", operation).Logger()

	code, known := statusForServiceError(err)
	if !known {
		log.Error().Err(err).Msg("Internal server error")
		return c.Status(code).JSON(models.Response{Success: false, Message: "An internal error occurred"})
	}

	log.Warn().Err(err).Msg("Request rejected by domain rules")
	return c.Status(code).JSON(models.Response{Success: false, Message: err.Error()})
}

// GetProgress godoc
// @Summary Get My Progress
// @Description Retrieves the gamification progress state (points, level, streak) for the current user.
// @Tags Progress
// @Produce json
// @Success 200 {object} models.Response{data=models.UserProgress} "Progress retrieved"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		log.Error().Err(err).Msg("Handler: Failed to extract userID from context")
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	progress, err := h.ProgressService.GetProgress(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "GetProgress")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Progress retrieved successfully",
		Data:    progress,
	})
}

// AddPoints godoc
// @Summary Add Points
// @Description Awards points to the current user from a named source. Negative amounts are rejected.
// @Tags Progress
// @Accept json
// @Produce json
// @Param input body models.AddPointsInput true "Points to add"
// @Success 200 {object} models.Response{data=models.ProgressUpdate} "Points added"
// @Failure 400 {object} models.Response "Invalid input or negative amount"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/points [post]
func (h *ProgressHandler) AddPoints(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	input := new(models.AddPointsInput)
	if err := c.BodyParser(input); err != nil {
		log.Warn().Err(err).Msg("Handler: Failed to parse AddPoints request body")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Invalid request body"})
	}

	if err := h.Validate.Struct(input); err != nil {
		validationErrors := utils.FormatValidationErrors(err)
		log.Warn().Interface("errors", validationErrors).Msg("Handler: Validation failed for AddPoints")
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{
			Success: false,
			Message: "Validation failed",
			Data:    validationErrors,
		})
	}

	update, err := h.ProgressService.AddPoints(c.Context(), userID, input)
	if err != nil {
		return handleServiceError(c, err, "AddPoints")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Points added successfully",
		Data:    update,
	})
}

// CompleteAction godoc
// @Summary Complete Privacy Action
// @Description Marks a privacy action as completed. Completing the same action again is a no-op.
// @Tags Progress
// @Produce json
// @Param actionId path string true "Action ID"
// @Success 200 {object} models.Response{data=models.ProgressUpdate} "Action completed"
// @Failure 400 {object} models.Response "Missing action ID"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/actions/{actionId}/complete [post]
func (h *ProgressHandler) CompleteAction(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	actionID := c.Params("actionId")
	if actionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Action ID is required"})
	}

	update, err := h.ProgressService.CompleteAction(c.Context(), userID, actionID)
	if err != nil {
		return handleServiceError(c, err, "CompleteAction")
	}

	message := "Action completed successfully"
	if update.PointsAwarded == 0 {
		message = "Action already completed"
	}
	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: message,
		Data:    update,
	})
}

// CompleteAssessment godoc
// @Summary Complete Privacy Assessment
// @Description Records a finished privacy assessment and awards points.
// @Tags Progress
// @Produce json
// @Success 200 {object} models.Response{data=models.ProgressUpdate} "Assessment recorded"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/assessments/complete [post]
func (h *ProgressHandler) CompleteAssessment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	update, err := h.ProgressService.CompleteAssessment(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "CompleteAssessment")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Assessment recorded successfully",
		Data:    update,
	})
}

// ShareContent godoc
// @Summary Record Content Share
// @Description Records that the user shared privacy content and awards points.
// @Tags Progress
// @Produce json
// @Success 200 {object} models.Response{data=models.ProgressUpdate} "Share recorded"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/shares [post]
func (h *ProgressHandler) ShareContent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	update, err := h.ProgressService.ShareContent(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "ShareContent")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Share recorded successfully",
		Data:    update,
	})
}

// ResetProgress godoc
// @Summary Reset My Progress
// @Description Clears all gamification state (points, streak, achievements, history) for the current user.
// @Tags Progress
// @Produce json
// @Success 200 {object} models.Response "Progress reset"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/reset [post]
func (h *ProgressHandler) ResetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	if err := h.ProgressService.ResetProgress(c.Context(), userID); err != nil {
		return handleServiceError(c, err, "ResetProgress")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Progress reset successfully",
	})
}

// GetAchievements godoc
// @Summary Get My Achievements
// @Description Lists the full achievement catalog together with the user's unlock state.
// @Tags Progress
// @Produce json
// @Success 200 {object} models.Response{data=[]models.AchievementStatus} "Achievements retrieved"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/achievements [get]
func (h *ProgressHandler) GetAchievements(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	achievements, err := h.ProgressService.GetAchievements(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "GetAchievements")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Achievements retrieved successfully",
		Data:    achievements,
	})
}

// GetPointHistory godoc
// @Summary Get My Point History
// @Description Retrieves the user's point transaction history, newest first, with pagination.
// @Tags Progress
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponseGeneric "History retrieved"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /progress/points/history [get]
func (h *ProgressHandler) GetPointHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	pagination := utils.ParsePaginationParams(c)

	transactions, totalCount, err := h.ProgressService.GetPointHistory(c.Context(), userID, pagination.Page, pagination.Limit)
	if err != nil {
		return handleServiceError(c, err, "GetPointHistory")
	}

	meta := utils.BuildPaginationMeta(totalCount, pagination.Limit, pagination.Page)
	response := utils.NewPaginatedResponse("Point history retrieved successfully", transactions, meta)

	return c.Status(http.StatusOK).JSON(response)
}
