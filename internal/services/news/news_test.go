package news

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateNews(ctx context.Context, n models.News) (*models.News, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *RepoMock) GetNews(ctx context.Context, id int64) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *RepoMock) UpdateNews(ctx context.Context, n models.News) error {
	return m.Called(ctx, n).Error(0)
}

func (m *RepoMock) DeleteNews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) ListNews(ctx context.Context) ([]*models.News, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.News), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &cache.Cache{Db: client}
}

var admin = &models.Account{UID: "admin", IsStaff: true}

func TestService_ListIsCached(t *testing.T) {
	ctx := context.Background()
	repo := &RepoMock{}
	svc := NewService(repo, newCache(t), time.Minute, newNoopLogger())

	repo.On("ListNews", ctx).Return([]*models.News{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, nil).Once()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Len(t, second, 2)
	assert.Equal(t, first[0].Title, second[0].Title)
	repo.AssertNumberOfCalls(t, "ListNews", 1)
}

func TestService_CreateInvalidatesList(t *testing.T) {
	ctx := context.Background()
	repo := &RepoMock{}
	svc := NewService(repo, newCache(t), time.Minute, newNoopLogger())

	repo.On("ListNews", ctx).Return([]*models.News{{ID: 1}}, nil).Once()
	_, err := svc.List(ctx)
	require.NoError(t, err)

	repo.On("CreateNews", ctx, models.News{Title: "Card announced", Content: "..."}).
		Return(&models.News{ID: 2, Title: "Card announced"}, nil)
	_, err = svc.Create(ctx, admin, models.NewsRequest{Title: "Card announced", Content: "..."})
	require.NoError(t, err)

	repo.On("ListNews", ctx).Return([]*models.News{{ID: 2}, {ID: 1}}, nil).Once()
	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &RepoMock{}
	svc := NewService(repo, newCache(t), time.Minute, newNoopLogger())
	title := "Updated"

	repo.On("GetNews", ctx, int64(1)).Return(&models.News{ID: 1, Title: "Old", Content: "c"}, nil)
	repo.On("UpdateNews", ctx, models.News{ID: 1, Title: "Updated", Content: "c"}).Return(nil)

	got, err := svc.Update(ctx, admin, 1, models.NewsUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
}

func TestService_AdminOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&RepoMock{}, newCache(t), time.Minute, newNoopLogger())

	_, err := svc.Create(ctx, &models.Account{}, models.NewsRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, apperr.ErrNotAdmin)
	assert.ErrorIs(t, svc.Delete(ctx, &models.Account{}, 1), apperr.ErrNotAdmin)
}
