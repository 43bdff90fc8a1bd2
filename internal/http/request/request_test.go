package request

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestBind(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{name: "valid", body: `{"message":"ready"}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "broken json", body: `{"message":`, wantStatus: http.StatusBadRequest},
		{name: "missing field", body: `{}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst models.SubStatusRequest
			ok := Bind(rec, req, newNoopLogger(), validator.New(), &dst)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{raw: "42", want: 42, wantOK: true},
		{raw: "0"},
		{raw: "-3"},
		{raw: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.raw)
			rec := httptest.NewRecorder()

			id, ok := ID(rec, req, newNoopLogger(), "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestUserUID(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := UserUID(rec, httptest.NewRequest(http.MethodGet, "/", nil), newNoopLogger())
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	uid, ok := UserUID(httptest.NewRecorder(), req, newNoopLogger())
	assert.True(t, ok)
	assert.Equal(t, "uid-1", uid)
}

func TestPage(t *testing.T) {
	tests := []struct {
		query string
		want  models.Page
	}{
		{query: "", want: models.Page{Number: 1, Size: 10}},
		{query: "page=3&page_size=5", want: models.Page{Number: 3, Size: 5}},
		{query: "page=-1&page_size=500", want: models.Page{Number: 1, Size: 100}},
		{query: "page=x", want: models.Page{Number: 1, Size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, Page(req, 10, 100))
		})
	}
}

func TestPageNumber(t *testing.T) {
	n, ok := PageNumber(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/home", nil), newNoopLogger())
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	rec := httptest.NewRecorder()
	_, ok = PageNumber(rec, httptest.NewRequest(http.MethodGet, "/home?page=last", nil), newNoopLogger())
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOptionalInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search?weight_min=146&weight_max=heavy", nil)

	got := OptionalInt(req, "weight_min")
	if assert.NotNil(t, got) {
		assert.Equal(t, 146, *got)
	}
	assert.Nil(t, OptionalInt(req, "weight_max"))
	assert.Nil(t, OptionalInt(req, "height_min"))
}
