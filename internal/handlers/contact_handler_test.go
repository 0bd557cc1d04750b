package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/precept-hq/contact-api/internal/models"
	apperrors "github.com/precept-hq/contact-api/pkg/errors"
)

// MockContactService implements services.ContactSubmitter for testing
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactResponse, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactResponse), args.Error(1)
}

func setupRouter(service *MockContactService) *gin.Engine {
	handler := NewContactHandler(service)
	router := gin.New()
	router.POST("/api/contact", handler.SubmitContact)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "go-test/1.0")
	req.RemoteAddr = "203.0.113.7:52341"
	router.ServeHTTP(w, req)
	return w
}

func TestContactHandler_SubmitContact_Success(t *testing.T) {
	mockService := new(MockContactService)
	router := setupRouter(mockService)

	reqBody := models.ContactRequest{
		Name:    "Ann",
		Email:   "ann@example.com",
		Message: "Hello",
	}

	mockService.On("Submit", mock.Anything,
		mock.MatchedBy(func(req *models.ContactRequest) bool {
			return req.Name == "Ann" && req.Email == "ann@example.com"
		}),
		mock.MatchedBy(func(meta models.RequestMeta) bool {
			// Metadata is captured server-side, not taken from the body.
			return meta.ClientIP == "203.0.113.7" && meta.UserAgent == "go-test/1.0" && !meta.SubmittedAt.IsZero()
		}),
	).Return(&models.ContactResponse{
		Success: true,
		Message: "Thank you for your message! We'll get back to you soon.",
	}, nil)

	w := postJSON(t, router, reqBody)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Thank you")

	mockService.AssertExpectations(t)
}

func TestContactHandler_SubmitContact_InvalidJSON(t *testing.T) {
	mockService := new(MockContactService)
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader([]byte("{invalid-json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Submit")
}

func TestContactHandler_SubmitContact_ValidationRejection(t *testing.T) {
	mockService := new(MockContactService)
	router := setupRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(
		&models.ContactResponse{Success: false, Message: "Please fill in all required fields"},
		apperrors.InvalidInputError("form", "required fields missing"),
	)

	w := postJSON(t, router, models.ContactRequest{Email: "ann@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Please fill in all required fields", resp.Message)
}

func TestContactHandler_SubmitContact_DispatchFailure(t *testing.T) {
	mockService := new(MockContactService)
	router := setupRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(
		&models.ContactResponse{Success: false, Message: "Sorry, there was an error sending your message. Please try again later."},
		apperrors.DispatchError(assert.AnError),
	)

	w := postJSON(t, router, models.ContactRequest{
		Name:    "Ann",
		Email:   "ann@example.com",
		Message: "Hello",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Message, "smtp", "transport detail must not leak to the caller")
}
