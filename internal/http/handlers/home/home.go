// Package home реализует HTTP-обработчик главной страницы.
package home

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fighters-hub/internal/http/request"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Service лента главной страницы.
type Service interface {
	Feed(ctx context.Context, page int) (*models.HomeFeed, error)
}

// Handler отдает главную страницу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Главная страница
// @Description Записи верифицированных бойцов с пагинацией, новости, весовые корзины и возможные бои.
// @Tags Home
// @Produce json
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Нет такой страницы"
// @Router /home [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, ok := request.PageNumber(w, r, log)
	if !ok {
		return
	}

	feed, err := h.service.Feed(r.Context(), page)
	if err != nil {
		log.Warn("failed to build home feed", slog.Int("page", page), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(feed))
}
