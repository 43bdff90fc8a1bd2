package substatus

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Post(ctx context.Context, uid, message string) (*models.SubStatus, error) {
	args := m.Called(ctx, uid, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubStatus), args.Error(1)
}

func (m *ServiceMock) Edit(ctx context.Context, uid string, id int64, message string) (*models.SubStatus, error) {
	args := m.Called(ctx, uid, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubStatus), args.Error(1)
}

func (m *ServiceMock) History(ctx context.Context, uid string) ([]*models.SubStatus, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubStatus), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func userRequest(method, target, body, id string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		message    string
		mockErr    error
		wantStatus int
	}{
		{name: "posted", body: `{"message":"cutting weight"}`, message: "cutting weight", wantStatus: http.StatusCreated},
		{name: "empty message", body: `{"message":""}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "blank after trim", body: `{"message":"   "}`, message: "   ", mockErr: apperr.ErrSubStatusLength, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.message != "" {
				var st *models.SubStatus
				if tt.mockErr == nil {
					st = &models.SubStatus{ID: 7, Message: tt.message}
				}
				svc.On("Post", mock.Anything, "uid-1", tt.message).Return(st, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			NewCreate(newNoopLogger(), svc).ServeHTTP(rec, userRequest(http.MethodPost, "/api/v1/substatus/create", tt.body, ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestEditHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		mockErr    error
		callSvc    bool
		wantStatus int
	}{
		{name: "edited", id: "3", callSvc: true, wantStatus: http.StatusOK},
		{name: "foreign entry", id: "3", callSvc: true, mockErr: apperr.ErrNotOwner, wantStatus: http.StatusForbidden},
		{name: "missing entry", id: "3", callSvc: true, mockErr: apperr.ErrSubStatusNotFound, wantStatus: http.StatusNotFound},
		{name: "bad id", id: "x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callSvc {
				var st *models.SubStatus
				if tt.mockErr == nil {
					st = &models.SubStatus{ID: 8, Message: "back in camp"}
				}
				svc.On("Edit", mock.Anything, "uid-1", int64(3), "back in camp").Return(st, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			NewEdit(newNoopLogger(), svc).ServeHTTP(rec, userRequest(http.MethodPatch, "/api/v1/substatus/"+tt.id+"/edit", `{"message":"back in camp"}`, tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("History", mock.Anything, "uid-1").Return([]*models.SubStatus{{ID: 2}, {ID: 1}}, nil).Once()

	rec := httptest.NewRecorder()
	NewHistory(newNoopLogger(), svc).ServeHTTP(rec, userRequest(http.MethodGet, "/api/v1/substatus", "", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
