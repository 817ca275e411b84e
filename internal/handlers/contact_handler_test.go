package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/handlers"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func contactRouter(service *MockContactIntake) *gin.Engine {
	handler := handlers.NewContactHandler(service)
	router := gin.New()
	router.POST("/api/v1/submit-contact", handler.SubmitContact)
	return router
}

func TestContactHandler_SubmitContact(t *testing.T) {
	mockService := new(MockContactIntake)
	router := contactRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.AnythingOfType("*models.SubmitContactRequest")).
		Return(&models.ContactMessage{
			ID:        uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
			CreatedAt: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		}, nil, nil).Once()

	body := `{"fullName":"John Smith","email":"john@example.com","phone":"(503) 555-0100","message":"Interested in a deck rebuild."}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/submit-contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SubmitContactResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "MSG-2026-A1B2", resp.TrackingID)
	assert.NotEmpty(t, resp.Message)
}

func TestContactHandler_SubmitContact_MalformedJSON(t *testing.T) {
	mockService := new(MockContactIntake)
	router := contactRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/submit-contact", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	mockService.AssertNotCalled(t, "Submit")
}

func TestContactHandler_SubmitContact_ValidationErrors(t *testing.T) {
	mockService := new(MockContactIntake)
	router := contactRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.Anything).
		Return(nil, []string{"Phone must match (XXX) XXX-XXXX"}, nil).Once()

	body := `{"fullName":"John Smith","email":"john@example.com","phone":"5035550100","message":"Interested in a deck rebuild."}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/submit-contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Phone must match")
}

func TestContactHandler_SubmitContact_PersistenceFailure(t *testing.T) {
	mockService := new(MockContactIntake)
	router := contactRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.Anything).
		Return(nil, nil, errors.New("connection refused")).Once()

	body := `{"fullName":"John Smith","email":"john@example.com","phone":"(503) 555-0100","message":"Interested in a deck rebuild."}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/submit-contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
