package home

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type PostsMock struct{ mock.Mock }

func (m *PostsMock) ListVerifiedPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}

type FightsMock struct{ mock.Mock }

func (m *FightsMock) ListProbableFights(ctx context.Context, limit int) ([]*models.ProbableFight, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProbableFight), args.Error(1)
}

type NewsMock struct{ mock.Mock }

func (m *NewsMock) List(ctx context.Context) ([]*models.News, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.News), args.Error(1)
}

type MatcherMock struct{ mock.Mock }

func (m *MatcherMock) Buckets(ctx context.Context, buckets []models.WeightBucket, k int) ([]models.BucketSample, error) {
	args := m.Called(ctx, buckets, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BucketSample), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func strp(s string) *string { return &s }

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		page    int
		want    models.Pagination
		wantErr error
	}{
		{
			name:  "empty feed",
			count: 0, page: 1,
			want: models.Pagination{Count: 0, CurrentPage: 1, TotalPages: 1},
		},
		{
			name:  "first of three",
			count: 25, page: 1,
			want: models.Pagination{Count: 25, CurrentPage: 1, TotalPages: 3, Next: strp("/api/v1/home?page=2")},
		},
		{
			name:  "second drops page param from previous",
			count: 25, page: 2,
			want: models.Pagination{
				Count: 25, CurrentPage: 2, TotalPages: 3,
				Next: strp("/api/v1/home?page=3"), Previous: strp("/api/v1/home"),
			},
		},
		{
			name:  "last",
			count: 25, page: 3,
			want: models.Pagination{Count: 25, CurrentPage: 3, TotalPages: 3, Previous: strp("/api/v1/home?page=2")},
		},
		{name: "beyond last", count: 25, page: 4, wantErr: apperr.ErrInvalidPage},
		{name: "zero", count: 25, page: 0, wantErr: apperr.ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Paginate(HomePath, tt.count, tt.page, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Feed(t *testing.T) {
	ctx := context.Background()
	cfg := config.Feed{PageSize: 10, BucketSample: 4, ProbableFights: 5}
	buckets := []models.WeightBucket{{Name: "171+", Min: 171}}

	t.Run("assembles all blocks", func(t *testing.T) {
		posts, fights, news, matcher := &PostsMock{}, &FightsMock{}, &NewsMock{}, &MatcherMock{}
		svc := NewService(posts, fights, news, matcher, buckets, cfg, newNoopLogger())

		posts.On("ListVerifiedPosts", ctx, 10, 10).Return([]*models.Post{{ID: 11}}, 11, nil)
		news.On("List", ctx).Return([]*models.News{{ID: 2}, {ID: 1}}, nil)
		matcher.On("Buckets", ctx, buckets, 4).Return([]models.BucketSample{{Name: "171+"}}, nil)
		fights.On("ListProbableFights", ctx, 5).Return([]*models.ProbableFight{{ID: 1}}, nil)

		feed, err := svc.Feed(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, feed.Posts, 1)
		assert.Equal(t, 2, feed.Pagination.TotalPages)
		assert.Nil(t, feed.Pagination.Next)
		assert.Len(t, feed.News, 2)
		assert.Len(t, feed.Buckets, 1)
		assert.Len(t, feed.ProbableFights, 1)
	})

	t.Run("page out of range", func(t *testing.T) {
		posts := &PostsMock{}
		svc := NewService(posts, &FightsMock{}, &NewsMock{}, &MatcherMock{}, buckets, cfg, newNoopLogger())
		posts.On("ListVerifiedPosts", ctx, 10, 40).Return([]*models.Post{}, 11, nil)

		_, err := svc.Feed(ctx, 5)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("storage error", func(t *testing.T) {
		posts := &PostsMock{}
		svc := NewService(posts, &FightsMock{}, &NewsMock{}, &MatcherMock{}, buckets, cfg, newNoopLogger())
		posts.On("ListVerifiedPosts", ctx, 10, 0).Return(nil, 0, errors.New("db down"))

		_, err := svc.Feed(ctx, 1)
		require.Error(t, err)
	})
}
