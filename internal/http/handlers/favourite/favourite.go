// Package favourite содержит HTTP-обработчики избранных профилей.
package favourite

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

// Service избранное пользователя.
type Service interface {
	Add(ctx context.Context, uid, username string) (int64, error)
	Remove(ctx context.Context, uid, username string) error
	List(ctx context.Context, uid string) ([]*models.Favourite, error)
}

// AddHandler добавляет профиль в избранное.
type AddHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewAdd создает AddHandler.
func NewAdd(log *slog.Logger, service Service) *AddHandler {
	return &AddHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавить в избранное
// @Tags Favourites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FavouriteRequest true "Профиль"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Уже в избранном"
// @Router /favourites [post]
func (h *AddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favourite.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.FavouriteRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	id, err := h.service.Add(r.Context(), uid, req.Username)
	if err != nil {
		log.Warn("failed to add favourite", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("favourite added", slog.String("username", req.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       id,
		"username": req.Username,
	}))
}

// RemoveHandler убирает профиль из избранного.
type RemoveHandler struct {
	log     *slog.Logger
	service Service
}

// NewRemove создает RemoveHandler.
func NewRemove(log *slog.Logger, service Service) *RemoveHandler {
	return &RemoveHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Убрать из избранного
// @Tags Favourites
// @Produce json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /favourites/{username} [delete]
func (h *RemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favourite.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), uid, username); err != nil {
		log.Warn("failed to remove favourite", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"username": username,
		"message":  "removed from favourites",
	}))
}

// ListHandler возвращает избранное текущего пользователя.
type ListHandler struct {
	log     *slog.Logger
	service Service
}

// NewList создает ListHandler.
func NewList(log *slog.Logger, service Service) *ListHandler {
	return &ListHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Избранное
// @Tags Favourites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /favourites [get]
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favourite.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.List(r.Context(), uid)
	if err != nil {
		log.Error("failed to list favourites", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}
