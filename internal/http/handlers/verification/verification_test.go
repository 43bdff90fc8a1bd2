package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) SubmitPayment(ctx context.Context, uid string) (*models.WaitingVerification, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitingVerification), args.Error(1)
}

func (m *ServiceMock) Approve(ctx context.Context, actor *models.Account, username string) (bool, error) {
	args := m.Called(ctx, actor, username)
	return args.Bool(0), args.Error(1)
}

func (m *ServiceMock) Reject(ctx context.Context, actor *models.Account, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func (m *ServiceMock) ListPending(ctx context.Context, actor *models.Account, page models.Page) ([]*models.WaitingVerification, error) {
	args := m.Called(ctx, actor, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WaitingVerification), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var admin = &models.Account{UID: "admin-uid", Username: "admin", IsStaff: true}

func adminRequest(method, target, username string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	if username != "" {
		rctx.URLParams.Add("username", username)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.Account, admin)
	return req.WithContext(ctx)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func TestSubmitHandler(t *testing.T) {
	tests := []struct {
		name       string
		mockResp   *models.WaitingVerification
		mockErr    error
		wantStatus int
	}{
		{name: "queued", mockResp: &models.WaitingVerification{ID: 1, Username: "khabib"}, wantStatus: http.StatusCreated},
		{name: "already pending", mockErr: apperr.ErrAlreadyPending, wantStatus: http.StatusConflict},
		{name: "already verified", mockErr: apperr.ErrAlreadyVerified, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("SubmitPayment", mock.Anything, "uid-1").Return(tt.mockResp, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payment", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
			rec := httptest.NewRecorder()

			NewSubmit(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestApproveHandler(t *testing.T) {
	tests := []struct {
		name        string
		already     bool
		mockErr     error
		wantStatus  int
		wantMessage string
	}{
		{name: "verified", wantStatus: http.StatusOK, wantMessage: "user verified"},
		{name: "already verified", already: true, wantStatus: http.StatusOK, wantMessage: "user is already verified"},
		{name: "unknown user", mockErr: apperr.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "not admin", mockErr: apperr.ErrNotAdmin, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Approve", mock.Anything, admin, "khabib").Return(tt.already, tt.mockErr).Once()

			rec := httptest.NewRecorder()
			NewApprove(newNoopLogger(), svc).ServeHTTP(rec, adminRequest(http.MethodGet, "/api/v1/set-verification/khabib", "khabib"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decode(t, rec)["data"].(map[string]any)["message"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestRejectHandler(t *testing.T) {
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
		wantError  string
	}{
		{name: "rejected", wantStatus: http.StatusOK},
		{name: "not in queue", mockErr: apperr.ErrNotFoundInQueue, wantStatus: http.StatusNotFound, wantError: "user is not in the verification waiting list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Reject", mock.Anything, admin, "khabib").Return(tt.mockErr).Once()

			rec := httptest.NewRecorder()
			NewReject(newNoopLogger(), svc).ServeHTTP(rec, adminRequest(http.MethodPost, "/api/v1/reject-verification/khabib", "khabib"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode(t, rec)["error"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPendingHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ListPending", mock.Anything, admin, models.Page{Number: 1, Size: defaultPageSize}).
		Return([]*models.WaitingVerification{{ID: 1, Username: "first"}, {ID: 2, Username: "second"}}, nil).Once()

	rec := httptest.NewRecorder()
	NewPending(newNoopLogger(), svc).ServeHTTP(rec, adminRequest(http.MethodGet, "/api/v1/waiting-verification", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "first", data[0].(map[string]any)["username"])
	svc.AssertExpectations(t)
}
