package register

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Мок сервиса аккаунтов
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, string, error) {
	args := m.Called(ctx, req)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	valid := models.RegisterRequest{
		Username:    "khabib",
		PhoneNumber: "+79990001122",
		Password:    "password123",
		Password2:   "password123",
	}

	tests := []struct {
		name           string
		requestBody    any
		callService    bool
		mockAcc        *models.Account
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid registration",
			requestBody:    valid,
			callService:    true,
			mockAcc:        &models.Account{UID: "uid-1", Username: "khabib"},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "broken body",
			requestBody:    "{",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing phone",
			requestBody:    models.RegisterRequest{Username: "khabib", Password: "a", Password2: "a"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field PhoneNumber is a required field",
		},
		{
			name:           "passwords mismatch",
			requestBody:    valid,
			callService:    true,
			mockErr:        apperr.ErrPasswordMismatch,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "passwords do not match",
		},
		{
			name:           "username taken",
			requestBody:    valid,
			callService:    true,
			mockErr:        apperr.ErrUsernameTaken,
			wantStatusCode: http.StatusConflict,
			wantError:      "username is already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil
			if tt.callService {
				serviceMock.On("Register", mock.Anything, tt.requestBody.(models.RegisterRequest)).
					Return(tt.mockAcc, "tok", tt.mockErr).Once()
			}

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data := got["data"].(map[string]any)
				assert.Equal(t, "tok", data["token"])
				assert.Equal(t, "uid-1", data["uid"])
				assert.Equal(t, "registered and logged in", data["message"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
