package promotion

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertPromotionProfile(ctx context.Context, p models.PromotionProfile) (*models.PromotionProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionProfile), args.Error(1)
}

func (m *RepoMock) GetPromotionProfile(ctx context.Context, accountUID string) (*models.PromotionProfile, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionProfile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()
	promo := &models.Account{UID: "uid-p", Username: "aca", IsPromotion: true}

	tests := []struct {
		name    string
		actor   *models.Account
		req     models.PromotionRequest
		wantErr error
	}{
		{name: "promotion account", actor: promo, req: models.PromotionRequest{City: "Moscow", DateOfCreate: "2014-03-01"}},
		{name: "regular account", actor: &models.Account{UID: "u"}, wantErr: apperr.ErrNotPromotion},
		{name: "bad date", actor: promo, req: models.PromotionRequest{DateOfCreate: "March 2014"}, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &RepoMock{}
			svc := NewService(repo, newNoopLogger())
			date := time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)
			repo.On("UpsertPromotionProfile", ctx, models.PromotionProfile{
				AccountUID: "uid-p", Username: "aca", City: "Moscow", DateOfCreate: &date,
			}).Return(&models.PromotionProfile{AccountUID: "uid-p", City: "Moscow"}, nil)

			got, err := svc.Save(ctx, tt.actor, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpsertPromotionProfile", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Moscow", got.City)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &RepoMock{}
	svc := NewService(repo, newNoopLogger())
	repo.On("GetPromotionProfile", ctx, "uid-p").Return(nil, apperr.ErrPromotionNotFound)

	_, err := svc.Get(ctx, &models.Account{UID: "uid-p", IsPromotion: true})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
