// Package profile содержит HTTP-обработчики профилей бойцов: свой профиль,
// его правку, публичную карточку и список верифицированных бойцов.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fighters-hub/internal/http/request"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service операции с профилями.
type Service interface {
	GetMine(ctx context.Context, uid string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.PublicProfile, error)
	UpdateMine(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.Profile, error)
	ListVerified(ctx context.Context, page models.Page) ([]models.PublicProfile, error)
}

// MineHandler возвращает профиль текущего пользователя.
type MineHandler struct {
	log     *slog.Logger
	service Service
}

// NewMine создает MineHandler.
func NewMine(log *slog.Logger, service Service) *MineHandler {
	return &MineHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мой профиль
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /profile [get]
func (h *MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.mine"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	p, err := h.service.GetMine(r.Context(), uid)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(p))
}

// UpdateHandler изменяет профиль текущего пользователя.
type UpdateHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewUpdate создает UpdateHandler.
func NewUpdate(log *slog.Logger, service Service) *UpdateHandler {
	return &UpdateHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Изменить профиль
// @Description Частичное изменение профиля. Смена имени синхронизируется с аккаунтом.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProfileUpdate true "Изменения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус или дата"
// @Failure 409 {object} response.ErrorResponse "Имя занято"
// @Failure 422 {object} response.ErrorResponse
// @Router /profile [patch]
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	p, err := h.service.UpdateMine(r.Context(), uid, req)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("profile updated", slog.String("username", p.Username))
	render.JSON(w, r, response.StatusOKWithData(p))
}

// PublicHandler возвращает публичную карточку бойца.
type PublicHandler struct {
	log     *slog.Logger
	service Service
}

// NewPublic создает PublicHandler.
func NewPublic(log *slog.Logger, service Service) *PublicHandler {
	return &PublicHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль бойца
// @Description Публичная карточка с действующим статусом.
// @Tags Profile
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /profiles/{username} [get]
func (h *PublicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.public"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	p, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		log.Warn("failed to get profile", slog.String("username", username), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(p))
}

// ListHandler возвращает страницу верифицированных бойцов.
type ListHandler struct {
	log     *slog.Logger
	service Service
}

// NewList создает ListHandler.
func NewList(log *slog.Logger, service Service) *ListHandler {
	return &ListHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Верифицированные бойцы
// @Tags Profile
// @Produce json
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} response.Response
// @Router /profiles [get]
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := request.Page(r, defaultPageSize, maxPageSize)
	profiles, err := h.service.ListVerified(r.Context(), page)
	if err != nil {
		log.Error("failed to list profiles", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profiles": profiles,
		"page":     page.Number,
	}))
}
