// Package substatus содержит HTTP-обработчики журнала саб-статусов.
package substatus

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

// Service журнал саб-статусов.
type Service interface {
	Post(ctx context.Context, uid, message string) (*models.SubStatus, error)
	Edit(ctx context.Context, uid string, id int64, message string) (*models.SubStatus, error)
	History(ctx context.Context, uid string) ([]*models.SubStatus, error)
}

// CreateHandler публикует саб-статус.
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
// @Summary Опубликовать саб-статус
// @Description Новый саб-статус становится действующим статусом профиля.
// @Tags SubStatus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SubStatusRequest true "Текст"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /substatus/create [post]
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.substatus.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.SubStatusRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	st, err := h.service.Post(r.Context(), uid, req.Message)
	if err != nil {
		log.Warn("failed to post sub-status", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("sub-status posted", slog.Int64("id", st.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(st))
}

// EditHandler правит саб-статус. Журнал не переписывается: правка добавляет новую запись.
type EditHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewEdit создает EditHandler.
func NewEdit(log *slog.Logger, service Service) *EditHandler {
	return &EditHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Изменить саб-статус
// @Tags SubStatus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID саб-статуса"
// @Param request body models.SubStatusRequest true "Новый текст"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Чужой саб-статус"
// @Failure 404 {object} response.ErrorResponse
// @Router /substatus/{id}/edit [patch]
func (h *EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.substatus.edit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, log, "id")
	if !ok {
		return
	}
	var req models.SubStatusRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	st, err := h.service.Edit(r.Context(), uid, id, req.Message)
	if err != nil {
		log.Warn("failed to edit sub-status", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("sub-status edited", slog.Int64("id", id), slog.Int64("new_id", st.ID))
	render.JSON(w, r, response.StatusOKWithData(st))
}

// HistoryHandler возвращает журнал саб-статусов текущего пользователя.
type HistoryHandler struct {
	log     *slog.Logger
	service Service
}

// NewHistory создает HistoryHandler.
func NewHistory(log *slog.Logger, service Service) *HistoryHandler {
	return &HistoryHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Журнал саб-статусов
// @Tags SubStatus
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /substatus [get]
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.substatus.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.History(r.Context(), uid)
	if err != nil {
		log.Error("failed to load sub-status history", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}
