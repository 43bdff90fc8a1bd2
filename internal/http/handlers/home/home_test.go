package home

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Feed(ctx context.Context, page int) (*models.HomeFeed, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HomeFeed), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler(t *testing.T) {
	next := "/api/v1/home?page=3"
	prev := "/api/v1/home"

	tests := []struct {
		name       string
		query      string
		page       int
		feed       *models.HomeFeed
		mockErr    error
		wantStatus int
	}{
		{
			name:  "second page",
			query: "?page=2",
			page:  2,
			feed: &models.HomeFeed{
				Posts:      []*models.Post{{ID: 11}},
				Pagination: models.Pagination{Count: 25, CurrentPage: 2, TotalPages: 3, Next: &next, Previous: &prev},
			},
			wantStatus: http.StatusOK,
		},
		{name: "default page", page: 1, feed: &models.HomeFeed{}, wantStatus: http.StatusOK},
		{name: "page out of range", query: "?page=9", page: 9, mockErr: apperr.ErrInvalidPage, wantStatus: http.StatusNotFound},
		{name: "page not a number", query: "?page=abc", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.feed != nil || tt.mockErr != nil {
				svc.On("Feed", mock.Anything, tt.page).Return(tt.feed, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/home"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.page == 2 {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				pagination := got["data"].(map[string]any)["pagination"].(map[string]any)
				assert.Equal(t, next, pagination["next"])
				assert.Equal(t, prev, pagination["previous"])
			}
			svc.AssertExpectations(t)
		})
	}
}
