// Package probablefight содержит HTTP-обработчики администрирования возможных боев.
package probablefight

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

// Service возможные бои.
type Service interface {
	Create(ctx context.Context, actor *models.Account, req models.ProbableFightRequest) (*models.ProbableFight, error)
	Update(ctx context.Context, actor *models.Account, id int64, upd models.ProbableFightUpdate) (*models.ProbableFight, error)
	Delete(ctx context.Context, actor *models.Account, id int64) error
	List(ctx context.Context, actor *models.Account) ([]*models.ProbableFight, error)
}

// ListHandler возвращает все возможные бои, новые первыми.
type ListHandler struct {
	log     *slog.Logger
	service Service
}

// NewList создает ListHandler.
func NewList(log *slog.Logger, service Service) *ListHandler {
	return &ListHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Возможные бои
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Router /probable-fights [get]
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.probablefight.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		log.Error("failed to list probable fights", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}

// CreateHandler создает возможный бой.
type CreateHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewCreate создает CreateHandler.
func NewCreate(log *slog.Logger, service Service) *CreateHandler {
	return &CreateHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Создать возможный бой
// @Description Оба бойца должны существовать, быть верифицированы и различаться.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProbableFightRequest true "Бой"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /probable-fights [post]
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.probablefight.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	var req models.ProbableFightRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	pf, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		log.Warn("failed to create probable fight", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("probable fight created", slog.Int64("id", pf.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(pf))
}

// UpdateHandler изменяет возможный бой.
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
// @Summary Изменить возможный бой
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID боя"
// @Param request body models.ProbableFightUpdate true "Изменения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /probable-fights/{id} [patch]
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.probablefight.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}
	var req models.ProbableFightUpdate
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	pf, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		log.Warn("failed to update probable fight", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(pf))
}

// DeleteHandler удаляет возможный бой.
type DeleteHandler struct {
	log     *slog.Logger
	service Service
}

// NewDelete создает DeleteHandler.
func NewDelete(log *slog.Logger, service Service) *DeleteHandler {
	return &DeleteHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить возможный бой
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID боя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /probable-fights/{id} [delete]
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.probablefight.delete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		log.Warn("failed to delete probable fight", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("probable fight deleted", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "probable fight deleted",
	}))
}
