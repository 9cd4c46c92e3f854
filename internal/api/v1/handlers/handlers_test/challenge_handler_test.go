package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/privguard/progress-engine-be/internal/api/v1/handlers"
	"github.com/privguard/progress-engine-be/internal/models"
	"github.com/privguard/progress-engine-be/internal/service"
	"github.com/privguard/progress-engine-be/internal/service/mocks"
	"github.com/privguard/progress-engine-be/internal/utils/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupChallengeApp(t *testing.T) (*fiber.App, *mocks.MockChallengeService) {
	t.Helper()
	app := fiber.New()
	mockService := mocks.NewMockChallengeService(t)
	handler := handlers.NewChallengeHandler(mockService)

	group := app.Group("/api/v1/challenge", test_utils.MockUserMiddleware(testUserID))
	group.Get("/", handler.GetChallenge)
	group.Post("/start", handler.StartChallenge)
	group.Post("/reset", handler.ResetChallenge)
	group.Post("/tasks/:taskId/complete", handler.CompleteTask)
	group.Get("/tasks/today", handler.CurrentDayTasks)

	return app, mockService
}

func TestChallengeHandler_GetChallenge(t *testing.T) {
	app, mockService := setupChallengeApp(t)
	mockService.On("GetChallenge", mock.Anything, testUserID).Return(&models.ChallengeState{
		Status: models.ChallengeStatusNotStarted,
		Tasks:  []models.DailyTask{},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenge/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(models.ChallengeStatusNotStarted), data["status"])
}

func TestChallengeHandler_StartChallenge(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mocks.MockChallengeService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("StartChallenge", mock.Anything, testUserID).Return(&models.ChallengeState{
					Status:        models.ChallengeStatusActive,
					PointsAwarded: 50,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Challenge started successfully",
		},
		{
			name: "Already Started",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("StartChallenge", mock.Anything, testUserID).
					Return(nil, service.ErrChallengeAlreadyStarted).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    service.ErrChallengeAlreadyStarted.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, mockService := setupChallengeApp(t)
			tc.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/challenge/start", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			body := decodeResponse(t, resp)
			assert.Equal(t, tc.expectedMsg, body["message"])
		})
	}
}

func TestChallengeHandler_CompleteTask(t *testing.T) {
	tests := []struct {
		name           string
		taskID         string
		setupMock      func(m *mocks.MockChallengeService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "Success",
			taskID: "day-01-lock-screen",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("CompleteTask", mock.Anything, testUserID, "day-01-lock-screen").
					Return(&models.ChallengeState{
						Status:        models.ChallengeStatusActive,
						PointsAwarded: 10,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Task completed successfully",
		},
		{
			name:   "Already Completed",
			taskID: "day-01-lock-screen",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("CompleteTask", mock.Anything, testUserID, "day-01-lock-screen").
					Return(&models.ChallengeState{Status: models.ChallengeStatusActive}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Task already completed",
		},
		{
			name:   "Task Not Found",
			taskID: "no-such-task",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("CompleteTask", mock.Anything, testUserID, "no-such-task").
					Return(nil, service.ErrTaskNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    service.ErrTaskNotFound.Error(),
		},
		{
			name:   "Challenge Not Started",
			taskID: "day-01-lock-screen",
			setupMock: func(m *mocks.MockChallengeService) {
				m.On("CompleteTask", mock.Anything, testUserID, "day-01-lock-screen").
					Return(nil, service.ErrChallengeNotStarted).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    service.ErrChallengeNotStarted.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, mockService := setupChallengeApp(t)
			tc.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/challenge/tasks/"+tc.taskID+"/complete", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			body := decodeResponse(t, resp)
			assert.Equal(t, tc.expectedMsg, body["message"])
		})
	}
}

func TestChallengeHandler_ResetChallenge(t *testing.T) {
	app, mockService := setupChallengeApp(t)
	mockService.On("ResetChallenge", mock.Anything, testUserID).Return(&models.ChallengeState{
		Status: models.ChallengeStatusNotStarted,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/challenge/reset", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChallengeHandler_CurrentDayTasks(t *testing.T) {
	app, mockService := setupChallengeApp(t)
	mockService.On("CurrentDayTasks", mock.Anything, testUserID).Return([]models.DailyTask{
		{ChallengeID: "ch-1", TaskID: "day-02-browser-privacy", Day: 2, Title: "Review browser privacy settings"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenge/tasks/today", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}
