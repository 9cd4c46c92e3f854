// internal/api/v1/handlers/challenge_handler.go
package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/service"
	"github.com/privguard/progress-engine-be/internal/utils"
)

type ChallengeHandler struct {
	ChallengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{ChallengeService: challengeService}
}

// GetChallenge godoc
// @Summary Get My Challenge
// @Description Retrieves the full 30-day challenge state for the current user, including all tasks.
// @Tags Challenge
// @Produce json
// @Success 200 {object} models.Response{data=models.ChallengeState} "Challenge retrieved"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /challenge [get]
func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	state, err := h.ChallengeService.GetChallenge(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "GetChallenge")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Challenge retrieved successfully",
		Data:    state,
	})
}

// StartChallenge godoc
// @Summary Start My Challenge
// @Description Starts the 30-day challenge. Fails with 409 if the challenge was already started.
// @Tags Challenge
// @Produce json
// @Success 200 {object} models.Response{data=models.ChallengeState} "Challenge started"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 409 {object} models.Response "Challenge already started"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /challenge/start [post]
func (h *ChallengeHandler) StartChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	state, err := h.ChallengeService.StartChallenge(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "StartChallenge")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Challenge started successfully",
		Data:    state,
	})
}

// CompleteTask godoc
// @Summary Complete Challenge Task
// @Description Marks one challenge task as completed and awards difficulty-based points. Re-completing a task is a no-op.
// @Tags Challenge
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} models.Response{data=models.ChallengeState} "Task completed"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 404 {object} models.Response "Task not found"
// @Failure 409 {object} models.Response "Challenge not started"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /challenge/tasks/{taskId}/complete [post]
func (h *ChallengeHandler) CompleteTask(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	taskID := c.Params("taskId")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.Response{Success: false, Message: "Task ID is required"})
	}

	state, err := h.ChallengeService.CompleteTask(c.Context(), userID, taskID)
	if err != nil {
		return handleServiceError(c, err, "CompleteTask")
	}

	message := "Task completed successfully"
	if state.PointsAwarded == 0 {
		message = "Task already completed"
	}
	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: message,
		Data:    state,
	})
}

// ResetChallenge godoc
// @Summary Reset My Challenge
// @Description Discards the current challenge (tasks and challenge achievements included) and creates a fresh, not-yet-started plan.
// @Tags Challenge
// @Produce json
// @Success 200 {object} models.Response{data=models.ChallengeState} "Challenge reset"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /challenge/reset [post]
func (h *ChallengeHandler) ResetChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	state, err := h.ChallengeService.ResetChallenge(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "ResetChallenge")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Challenge reset successfully",
		Data:    state,
	})
}

// CurrentDayTasks godoc
// @Summary Get Today's Tasks
// @Description Retrieves the tasks scheduled for the challenge's current day.
// @Tags Challenge
// @Produce json
// @Success 200 {object} models.Response{data=[]models.DailyTask} "Tasks retrieved"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 409 {object} models.Response "Challenge not started"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /challenge/tasks/today [get]
func (h *ChallengeHandler) CurrentDayTasks(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.Response{Success: false, Message: "Unauthorized: Missing user identity"})
	}

	tasks, err := h.ChallengeService.CurrentDayTasks(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "CurrentDayTasks")
	}

	return c.Status(http.StatusOK).JSON(models.Response{
		Success: true,
		Message: "Tasks retrieved successfully",
		Data:    tasks,
	})
}
