// Package news содержит HTTP-обработчики новостей: публичное чтение
// и администрирование.
package news

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

// Service новости.
type Service interface {
	List(ctx context.Context) ([]*models.News, error)
	Get(ctx context.Context, id int64) (*models.News, error)
	Create(ctx context.Context, actor *models.Account, req models.NewsRequest) (*models.News, error)
	Update(ctx context.Context, actor *models.Account, id int64, upd models.NewsUpdate) (*models.News, error)
	Delete(ctx context.Context, actor *models.Account, id int64) error
}

// ListHandler возвращает все новости, новые первыми.
type ListHandler struct {
	log     *slog.Logger
	service Service
}

// NewList создает ListHandler.
func NewList(log *slog.Logger, service Service) *ListHandler {
	return &ListHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Новости
// @Tags News
// @Produce json
// @Success 200 {object} response.Response
// @Router /news [get]
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list news", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}

// GetHandler возвращает новость.
type GetHandler struct {
	log     *slog.Logger
	service Service
}

// NewGet создает GetHandler.
func NewGet(log *slog.Logger, service Service) *GetHandler {
	return &GetHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Новость
// @Tags News
// @Produce json
// @Param id path int true "ID новости"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /news/{id} [get]
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}

	n, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Warn("failed to get news", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(n))
}

// CreateHandler публикует новость.
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
// @Summary Опубликовать новость
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.NewsRequest true "Новость"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /news [post]
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	var req models.NewsRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	n, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		log.Error("failed to create news", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("news created", slog.Int64("id", n.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(n))
}

// UpdateHandler изменяет новость.
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
// @Summary Изменить новость
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID новости"
// @Param request body models.NewsUpdate true "Изменения"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /news/{id} [patch]
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.update"

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
	var req models.NewsUpdate
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	n, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		log.Warn("failed to update news", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(n))
}

// DeleteHandler удаляет новость.
type DeleteHandler struct {
	log     *slog.Logger
	service Service
}

// NewDelete создает DeleteHandler.
func NewDelete(log *slog.Logger, service Service) *DeleteHandler {
	return &DeleteHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить новость
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID новости"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /news/{id} [delete]
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.delete"

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
		log.Warn("failed to delete news", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("news deleted", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "news deleted",
	}))
}
