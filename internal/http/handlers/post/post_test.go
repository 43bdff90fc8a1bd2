package post

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

func (m *ServiceMock) CreatePost(ctx context.Context, uid string, req models.PostRequest) (*models.Post, error) {
	args := m.Called(ctx, uid, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *ServiceMock) ListByAuthor(ctx context.Context, username string, page models.Page) ([]*models.Post, error) {
	args := m.Called(ctx, username, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *ServiceMock) DeletePost(ctx context.Context, uid string, id int64) error {
	return m.Called(ctx, uid, id).Error(0)
}

func (m *ServiceMock) Like(ctx context.Context, uid string, postID int64) error {
	return m.Called(ctx, uid, postID).Error(0)
}

func (m *ServiceMock) Unlike(ctx context.Context, uid string, postID int64) error {
	return m.Called(ctx, uid, postID).Error(0)
}

func (m *ServiceMock) Comment(ctx context.Context, uid string, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, uid, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *ServiceMock) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// newRequest собирает запрос с uid (если задан) и параметрами пути.
func newRequest(method, target, body, uid string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := req.Context()
	if uid != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, uid)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		req        *models.PostRequest
		wantStatus int
	}{
		{name: "created", body: `{"title":"fight week"}`, req: &models.PostRequest{Title: "fight week"}, wantStatus: http.StatusCreated},
		{name: "missing title", body: `{"content":"x"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad video url", body: `{"title":"t","video_url":"not a url"}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.req != nil {
				svc.On("CreatePost", mock.Anything, "uid-1", *tt.req).Return(&models.Post{ID: 1, Title: tt.req.Title}, nil).Once()
			}

			rec := httptest.NewRecorder()
			NewCreate(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/posts", tt.body, "uid-1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "foreign", mockErr: apperr.ErrNotOwner, wantStatus: http.StatusForbidden},
		{name: "missing", mockErr: apperr.ErrPostNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("DeletePost", mock.Anything, "uid-1", int64(4)).Return(tt.mockErr).Once()

			rec := httptest.NewRecorder()
			NewDelete(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/v1/posts/4", "", "uid-1", map[string]string{"id": "4"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestListByAuthorHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ListByAuthor", mock.Anything, "khabib", models.Page{Number: 1, Size: defaultPageSize}).
		Return([]*models.Post{{ID: 2}, {ID: 1}}, nil).Once()

	rec := httptest.NewRecorder()
	NewListByAuthor(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/profiles/khabib/posts", "", "", map[string]string{"username": "khabib"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestLikeHandler(t *testing.T) {
	tests := []struct {
		name       string
		unlike     bool
		mockErr    error
		wantStatus int
	}{
		{name: "like", wantStatus: http.StatusOK},
		{name: "like twice", mockErr: apperr.ErrAlreadyLiked, wantStatus: http.StatusConflict},
		{name: "unlike", unlike: true, wantStatus: http.StatusOK},
		{name: "unlike missing", unlike: true, mockErr: apperr.ErrLikeNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			var h http.Handler
			if tt.unlike {
				svc.On("Unlike", mock.Anything, "uid-1", int64(9)).Return(tt.mockErr).Once()
				h = NewUnlike(newNoopLogger(), svc)
			} else {
				svc.On("Like", mock.Anything, "uid-1", int64(9)).Return(tt.mockErr).Once()
				h = NewLike(newNoopLogger(), svc)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/posts/9/like", "", "uid-1", map[string]string{"id": "9"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCommentHandlers(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Comment", mock.Anything, "uid-1", int64(3), "great fight").
		Return(&models.Comment{ID: 1, PostID: 3, Text: "great fight"}, nil).Once()
	svc.On("ListComments", mock.Anything, int64(404)).Return(nil, apperr.ErrPostNotFound).Once()

	rec := httptest.NewRecorder()
	NewComment(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/posts/3/comments", `{"text":"great fight"}`, "uid-1", map[string]string{"id": "3"}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	NewComments(newNoopLogger(), svc).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/posts/404/comments", "", "", map[string]string{"id": "404"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}
