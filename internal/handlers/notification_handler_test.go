package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/handlers"
	"github.com/hearthside/hearthside-api/internal/models"
	apperrors "github.com/hearthside/hearthside-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func notificationRouter(dispatcher *MockNotificationDispatcher) *gin.Engine {
	handler := handlers.NewNotificationHandler(dispatcher)
	router := gin.New()
	router.POST("/api/internal/send-notification", handler.SendNotification)
	return router
}

func TestNotificationHandler_SendNotification(t *testing.T) {
	mockDispatcher := new(MockNotificationDispatcher)
	router := notificationRouter(mockDispatcher)

	id := uuid.New()
	mockDispatcher.On("DispatchByID", mock.Anything, id).
		Return(models.DispatchResult{BusinessEmail: true, CustomerEmail: true}, nil).Once()

	body := `{"quoteId":"` + id.String() + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/internal/send-notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SendNotificationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.SMS)
	assert.True(t, resp.BusinessEmail)
	assert.True(t, resp.CustomerEmail)
	assert.Empty(t, resp.Error)
}

func TestNotificationHandler_SendNotification_PartialDelivery(t *testing.T) {
	mockDispatcher := new(MockNotificationDispatcher)
	router := notificationRouter(mockDispatcher)

	id := uuid.New()
	mockDispatcher.On("DispatchByID", mock.Anything, id).
		Return(models.DispatchResult{BusinessEmail: true, CustomerEmail: false}, nil).Once()

	body := `{"quoteId":"` + id.String() + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/internal/send-notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SendNotificationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.True(t, resp.BusinessEmail)
	assert.False(t, resp.CustomerEmail)
	assert.NotEmpty(t, resp.Error)
}

func TestNotificationHandler_SendNotification_InvalidID(t *testing.T) {
	mockDispatcher := new(MockNotificationDispatcher)
	router := notificationRouter(mockDispatcher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/internal/send-notification", strings.NewReader(`{"quoteId":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDispatcher.AssertNotCalled(t, "DispatchByID")
}

func TestNotificationHandler_SendNotification_QuoteNotFound(t *testing.T) {
	mockDispatcher := new(MockNotificationDispatcher)
	router := notificationRouter(mockDispatcher)

	id := uuid.New()
	mockDispatcher.On("DispatchByID", mock.Anything, id).
		Return(models.DispatchResult{}, apperrors.NotFoundError("quote request")).Once()

	body := `{"quoteId":"` + id.String() + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/internal/send-notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
