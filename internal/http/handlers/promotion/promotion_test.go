package promotion

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Save(ctx context.Context, actor *models.Account, req models.PromotionRequest) (*models.PromotionProfile, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionProfile), args.Error(1)
}

func (m *ServiceMock) Get(ctx context.Context, actor *models.Account) (*models.PromotionProfile, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionProfile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withAccount(r *http.Request, acc *models.Account) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middlewarectx.Account, acc))
}

func TestSaveHandler(t *testing.T) {
	promo := &models.Account{UID: "p-uid", Username: "ufc", IsPromotion: true}
	fighter := &models.Account{UID: "f-uid", Username: "khabib"}

	tests := []struct {
		name       string
		acc        *models.Account
		body       string
		req        *models.PromotionRequest
		mockErr    error
		wantStatus int
	}{
		{
			name:       "saved",
			acc:        promo,
			body:       `{"city":"Las Vegas","creator":"Dana","date_of_create":"1993-11-12"}`,
			req:        &models.PromotionRequest{City: "Las Vegas", Creator: "Dana", DateOfCreate: "1993-11-12"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not a promotion",
			acc:        fighter,
			body:       `{"city":"Moscow"}`,
			req:        &models.PromotionRequest{City: "Moscow"},
			mockErr:    apperr.ErrNotPromotion,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "bad logo url",
			acc:        promo,
			body:       `{"logo_url":"logo"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.req != nil {
				var p *models.PromotionProfile
				if tt.mockErr == nil {
					p = &models.PromotionProfile{Username: tt.acc.Username, City: tt.req.City}
				}
				svc.On("Save", mock.Anything, tt.acc, *tt.req).Return(p, tt.mockErr).Once()
			}

			req := withAccount(httptest.NewRequest(http.MethodPut, "/api/v1/promotion", bytes.NewBufferString(tt.body)), tt.acc)
			rec := httptest.NewRecorder()
			NewSave(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGetHandler(t *testing.T) {
	promo := &models.Account{UID: "p-uid", Username: "ufc", IsPromotion: true}
	svc := new(ServiceMock)
	svc.On("Get", mock.Anything, promo).Return(nil, apperr.ErrPromotionNotFound).Once()

	rec := httptest.NewRecorder()
	NewGet(newNoopLogger(), svc).ServeHTTP(rec, withAccount(httptest.NewRequest(http.MethodGet, "/api/v1/promotion", nil), promo))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}
