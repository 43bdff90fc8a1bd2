package news

import (
	"bytes"
	"context"
	"errors"
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

func (m *ServiceMock) List(ctx context.Context) ([]*models.News, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.News), args.Error(1)
}

func (m *ServiceMock) Get(ctx context.Context, id int64) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *ServiceMock) Create(ctx context.Context, actor *models.Account, req models.NewsRequest) (*models.News, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, actor *models.Account, id int64, upd models.NewsUpdate) (*models.News, error) {
	args := m.Called(ctx, actor, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *ServiceMock) Delete(ctx context.Context, actor *models.Account, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var admin = &models.Account{UID: "admin-uid", IsStaff: true}

func newRequest(method, target, body, id string, acc *models.Account) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if acc != nil {
		ctx = context.WithValue(ctx, middlewarectx.Account, acc)
	}
	return req.WithContext(ctx)
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name       string
		list       []*models.News
		mockErr    error
		wantStatus int
	}{
		{name: "ok", list: []*models.News{{ID: 2}, {ID: 1}}, wantStatus: http.StatusOK},
		{name: "failure", mockErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("List", mock.Anything).Return(tt.list, tt.mockErr).Once()

			rec := httptest.NewRecorder()
			NewList(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/news", "", "", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGetHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Get", mock.Anything, int64(1)).Return(&models.News{ID: 1, Title: "UFC 300"}, nil).Once()
	svc.On("Get", mock.Anything, int64(2)).Return(nil, apperr.ErrNewsNotFound).Once()

	rec := httptest.NewRecorder()
	NewGet(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/news/1", "", "1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "UFC 300")

	rec = httptest.NewRecorder()
	NewGet(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/news/2", "", "2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		req        *models.NewsRequest
		wantStatus int
	}{
		{name: "created", body: `{"title":"Weigh-ins","content":"all on weight"}`, req: &models.NewsRequest{Title: "Weigh-ins", Content: "all on weight"}, wantStatus: http.StatusCreated},
		{name: "no content", body: `{"title":"Weigh-ins"}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.req != nil {
				svc.On("Create", mock.Anything, admin, *tt.req).Return(&models.News{ID: 3, Title: tt.req.Title}, nil).Once()
			}

			rec := httptest.NewRecorder()
			NewCreate(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/news", tt.body, "", admin))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUpdateAndDeleteHandlers(t *testing.T) {
	title := "Fight night"
	svc := new(ServiceMock)
	svc.On("Update", mock.Anything, admin, int64(4), models.NewsUpdate{Title: &title}).
		Return(&models.News{ID: 4, Title: title}, nil).Once()
	svc.On("Delete", mock.Anything, admin, int64(4)).Return(nil).Once()

	rec := httptest.NewRecorder()
	NewUpdate(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodPatch, "/api/v1/news/4", `{"title":"Fight night"}`, "4", admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewDelete(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/v1/news/4", "", "4", admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertExpectations(t)
}
