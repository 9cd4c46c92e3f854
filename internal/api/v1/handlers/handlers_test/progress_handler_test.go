package handlers_test

import (
	"bytes"
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

const testUserID = "user-abc"

func setupProgressApp(t *testing.T) (*fiber.App, *mocks.MockProgressService) {
	t.Helper()
	app := fiber.New()
	mockService := mocks.NewMockProgressService(t)
	handler := handlers.NewProgressHandler(mockService)

	group := app.Group("/api/v1/progress", test_utils.MockUserMiddleware(testUserID))
	group.Get("/", handler.GetProgress)
	group.Post("/points", handler.AddPoints)
	group.Post("/actions/:actionId/complete", handler.CompleteAction)
	group.Post("/assessments/complete", handler.CompleteAssessment)
	group.Post("/shares", handler.ShareContent)
	group.Post("/reset", handler.ResetProgress)
	group.Get("/achievements", handler.GetAchievements)
	group.Get("/points/history", handler.GetPointHistory)

	return app, mockService
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestProgressHandler_GetProgress(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mocks.MockProgressService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			setupMock: func(m *mocks.MockProgressService) {
				m.On("GetProgress", mock.Anything, testUserID).
					Return(&models.UserProgress{UserID: testUserID, TotalPoints: 150, Level: 2, CurrentLevelPoints: 50}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Progress retrieved successfully",
		},
		{
			name: "Service Error",
			setupMock: func(m *mocks.MockProgressService) {
				m.On("GetProgress", mock.Anything, testUserID).
					Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, mockService := setupProgressApp(t)
			tc.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			body := decodeResponse(t, resp)
			assert.Equal(t, tc.expectedMsg, body["message"])
		})
	}
}

func TestProgressHandler_AddPoints(t *testing.T) {
	tests := []struct {
		name           string
		input          interface{}
		setupMock      func(m *mocks.MockProgressService)
		expectedStatus int
	}{
		{
			name:  "Success",
			input: models.AddPointsInput{Points: 30, Source: string(models.SourceManual)},
			setupMock: func(m *mocks.MockProgressService) {
				m.On("AddPoints", mock.Anything, testUserID, mock.MatchedBy(func(in *models.AddPointsInput) bool {
					return in.Points == 30
				})).Return(&models.ProgressUpdate{
					Progress:      &models.UserProgress{UserID: testUserID, TotalPoints: 30, Level: 1},
					PointsAwarded: 30,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Validation Failure - Unknown Source",
			input:          models.AddPointsInput{Points: 30, Source: "bogus"},
			setupMock:      func(m *mocks.MockProgressService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Validation Failure - Negative Points",
			input:          models.AddPointsInput{Points: -5, Source: string(models.SourceManual)},
			setupMock:      func(m *mocks.MockProgressService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Service Rejects Negative",
			input: models.AddPointsInput{Points: 0, Source: string(models.SourceManual)},
			setupMock: func(m *mocks.MockProgressService) {
				m.On("AddPoints", mock.Anything, testUserID, mock.Anything).
					Return(nil, service.ErrNegativePoints).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, mockService := setupProgressApp(t)
			tc.setupMock(mockService)

			payload, err := json.Marshal(tc.input)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/points", bytes.NewReader(payload))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestProgressHandler_CompleteAction(t *testing.T) {
	tests := []struct {
		name           string
		update         *models.ProgressUpdate
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "First Completion",
			update: &models.ProgressUpdate{
				Progress:      &models.UserProgress{UserID: testUserID, TotalPoints: 50},
				PointsAwarded: 25,
				NewlyUnlocked: []string{"first-action"},
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Action completed successfully",
		},
		{
			name: "Repeat Completion Is NoOp",
			update: &models.ProgressUpdate{
				Progress:      &models.UserProgress{UserID: testUserID, TotalPoints: 50},
				PointsAwarded: 0,
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Action already completed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, mockService := setupProgressApp(t)
			mockService.On("CompleteAction", mock.Anything, testUserID, "enable-2fa").
				Return(tc.update, nil).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/actions/enable-2fa/complete", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			body := decodeResponse(t, resp)
			assert.Equal(t, tc.expectedMsg, body["message"])
		})
	}
}

func TestProgressHandler_ResetProgress(t *testing.T) {
	app, mockService := setupProgressApp(t)
	mockService.On("ResetProgress", mock.Anything, testUserID).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/reset", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestProgressHandler_GetAchievements(t *testing.T) {
	app, mockService := setupProgressApp(t)
	mockService.On("GetAchievements", mock.Anything, testUserID).Return([]models.AchievementStatus{
		{ID: "first-action", Title: "First Step", Unlocked: true},
		{ID: "action-taker", Title: "Action Taker", Unlocked: false},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/achievements", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestProgressHandler_GetPointHistory_Pagination(t *testing.T) {
	app, mockService := setupProgressApp(t)
	mockService.On("GetPointHistory", mock.Anything, testUserID, 2, 5).Return([]models.PointTransaction{
		{ID: 6, UserID: testUserID, ChangeAmount: 25, Source: models.SourceActionCompleted},
	}, 6, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/points/history?page=2&limit=5", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), meta["total_items"])
	assert.Equal(t, float64(2), meta["current_page"])
}

func TestProgressHandler_MissingIdentityRejected(t *testing.T) {
	// Tanpa middleware identitas, handler sendiri menolak request.
	app := fiber.New()
	mockService := mocks.NewMockProgressService(t)
	handler := handlers.NewProgressHandler(mockService)
	app.Get("/api/v1/progress/", handler.GetProgress)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
