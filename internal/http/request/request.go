// Package request разбирает входные данные HTTP-обработчиков: тело, параметры пути
// и пользователя из контекста. При ошибке функции сами пишут ответ и возвращают false.
package request

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Bind декодирует JSON-тело в dst и валидирует его.
func Bind(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Warn("failed to decode request body", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		log.Warn("validation failed", sl.Err(err))
		response.RenderInvalid(w, r, err)
		return false
	}
	return true
}

// ID разбирает числовой параметр пути.
func ID(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		log.Warn("failed to decode id from url", slog.String("param", name), sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// Username возвращает непустой параметр пути username.
func Username(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		log.Warn("username is missing in url")
		response.RenderStatus(w, r, http.StatusBadRequest, "username is required")
		return "", false
	}
	return username, true
}

// UserUID возвращает uid пользователя, положенный JWTMiddleware.
func UserUID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	uid, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		response.RenderStatus(w, r, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return uid, true
}

// Account возвращает аккаунт, загруженный middlewarectx.LoadAccount.
func Account(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*models.Account, bool) {
	acc, ok := middlewarectx.AccountFrom(r.Context())
	if !ok {
		log.Error("account not found in context")
		response.RenderStatus(w, r, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return acc, true
}

// PageNumber читает номер страницы из query. Отсутствующее значение дает 1,
// нечисловое считается ошибкой.
func PageNumber(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("invalid page parameter", slog.String("page", raw))
		response.RenderStatus(w, r, http.StatusNotFound, "invalid page")
		return 0, false
	}
	return n, true
}

// Page читает номер страницы и размер из query (page, page_size).
// Размер ограничен maxSize, по умолчанию defaultSize.
func Page(r *http.Request, defaultSize, maxSize int) models.Page {
	q := r.URL.Query()
	p := models.Page{Number: 1, Size: defaultSize}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 {
		p.Size = min(n, maxSize)
	}
	return p
}

// OptionalInt читает числовой параметр query. Нечисловое значение игнорируется.
func OptionalInt(r *http.Request, name string) *int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
