// Package promotion содержит HTTP-обработчики карточки промоушена.
package promotion

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

// Service карточки промоушенов.
type Service interface {
	Save(ctx context.Context, actor *models.Account, req models.PromotionRequest) (*models.PromotionProfile, error)
	Get(ctx context.Context, actor *models.Account) (*models.PromotionProfile, error)
}

// GetHandler возвращает карточку промоушена текущего аккаунта.
type GetHandler struct {
	log     *slog.Logger
	service Service
}

// NewGet создает GetHandler.
func NewGet(log *slog.Logger, service Service) *GetHandler {
	return &GetHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка промоушена
// @Tags Promotion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Аккаунт не промоушен"
// @Failure 404 {object} response.ErrorResponse
// @Router /promotion [get]
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promotion.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), actor)
	if err != nil {
		log.Warn("failed to get promotion profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(p))
}

// SaveHandler создает или перезаписывает карточку промоушена.
type SaveHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewSave создает SaveHandler.
func NewSave(log *slog.Logger, service Service) *SaveHandler {
	return &SaveHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Сохранить карточку промоушена
// @Tags Promotion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PromotionRequest true "Карточка"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 403 {object} response.ErrorResponse "Аккаунт не промоушен"
// @Failure 422 {object} response.ErrorResponse
// @Router /promotion [put]
func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promotion.save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	var req models.PromotionRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	p, err := h.service.Save(r.Context(), actor, req)
	if err != nil {
		log.Warn("failed to save promotion profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("promotion profile saved", slog.String("username", actor.Username))
	render.JSON(w, r, response.StatusOKWithData(p))
}
