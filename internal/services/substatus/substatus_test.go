package substatus

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *RepoMock) GetProfile(ctx context.Context, accountUID string) (*models.Profile, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) AddSubStatus(ctx context.Context, profileUID, message string) (*models.SubStatus, error) {
	args := m.Called(ctx, profileUID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubStatus), args.Error(1)
}

func (m *RepoMock) GetSubStatus(ctx context.Context, id int64) (*models.SubStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubStatus), args.Error(1)
}

func (m *RepoMock) LatestSubStatus(ctx context.Context, profileUID string) (*models.SubStatus, bool, error) {
	args := m.Called(ctx, profileUID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.SubStatus), args.Bool(1), args.Error(2)
}

func (m *RepoMock) ListSubStatuses(ctx context.Context, profileUID string) ([]*models.SubStatus, error) {
	args := m.Called(ctx, profileUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubStatus), args.Error(1)
}

func (m *RepoMock) SetDisplayStatus(ctx context.Context, accountUID, message string) error {
	return m.Called(ctx, accountUID, message).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Post(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		wantErr error
	}{
		{name: "ok", message: "  fight camp in Dubai "},
		{name: "exactly max length", message: strings.Repeat("я", MaxLength)},
		{name: "empty", message: "   ", wantErr: apperr.ErrSubStatusLength},
		{name: "too long", message: strings.Repeat("a", MaxLength+1), wantErr: apperr.ErrSubStatusLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, c := &RepoMock{}, &CacheMock{}
			svc := NewService(repo, c, newNoopLogger())
			want := strings.TrimSpace(tt.message)

			repo.On("GetProfile", ctx, "uid-1").Return(&models.Profile{AccountUID: "uid-1", Username: "khabib"}, nil)
			repo.On("AddSubStatus", ctx, "uid-1", want).Return(&models.SubStatus{ID: 7, ProfileUID: "uid-1", Message: want}, nil)
			repo.On("SetDisplayStatus", ctx, "uid-1", want).Return(nil)
			c.On("Invalidate", ctx, []string{cache.ProfileKey("khabib")}).Return(nil)

			got, err := svc.Post(ctx, "uid-1", tt.message)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrValidation)
				repo.AssertNotCalled(t, "AddSubStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got.Message)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("owner appends new entry", func(t *testing.T) {
		repo, c := &RepoMock{}, &CacheMock{}
		svc := NewService(repo, c, newNoopLogger())

		repo.On("GetSubStatus", ctx, int64(3)).Return(&models.SubStatus{ID: 3, ProfileUID: "uid-1", Message: "old"}, nil)
		repo.On("GetProfile", ctx, "uid-1").Return(&models.Profile{AccountUID: "uid-1", Username: "khabib"}, nil)
		repo.On("AddSubStatus", ctx, "uid-1", "new").Return(&models.SubStatus{ID: 4, ProfileUID: "uid-1", Message: "new"}, nil)
		repo.On("SetDisplayStatus", ctx, "uid-1", "new").Return(nil)
		c.On("Invalidate", ctx, mock.Anything).Return(nil)

		got, err := svc.Edit(ctx, "uid-1", 3, "new")
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
	})

	t.Run("foreign entry", func(t *testing.T) {
		repo := &RepoMock{}
		svc := NewService(repo, &CacheMock{}, newNoopLogger())
		repo.On("GetSubStatus", ctx, int64(3)).Return(&models.SubStatus{ID: 3, ProfileUID: "uid-2"}, nil)

		_, err := svc.Edit(ctx, "uid-1", 3, "new")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
		repo.AssertNotCalled(t, "AddSubStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing entry", func(t *testing.T) {
		repo := &RepoMock{}
		svc := NewService(repo, &CacheMock{}, newNoopLogger())
		repo.On("GetSubStatus", ctx, int64(99)).Return(nil, apperr.ErrSubStatusNotFound)

		_, err := svc.Edit(ctx, "uid-1", 99, "new")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Effective(t *testing.T) {
	ctx := context.Background()
	p := &models.Profile{AccountUID: "uid-1", Username: "khabib", Status: models.StatusHasContract}

	t.Run("latest entry", func(t *testing.T) {
		repo := &RepoMock{}
		svc := NewService(repo, &CacheMock{}, newNoopLogger())
		repo.On("GetProfileByUsername", ctx, "khabib").Return(p, nil)
		repo.On("LatestSubStatus", ctx, "uid-1").Return(&models.SubStatus{Message: "recovering"}, true, nil)

		got, err := svc.Effective(ctx, "khabib")
		require.NoError(t, err)
		assert.Equal(t, "recovering", got)
	})

	t.Run("no entries", func(t *testing.T) {
		repo := &RepoMock{}
		svc := NewService(repo, &CacheMock{}, newNoopLogger())
		repo.On("GetProfileByUsername", ctx, "khabib").Return(p, nil)
		repo.On("LatestSubStatus", ctx, "uid-1").Return(nil, false, nil)

		got, err := svc.Effective(ctx, "khabib")
		require.NoError(t, err)
		assert.Equal(t, "HasContract", got)
	})
}
