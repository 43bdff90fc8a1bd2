// Package fightrecord содержит HTTP-обработчики послужного списка бойцов.
package fightrecord

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

// Service бои бойцов.
type Service interface {
	Submit(ctx context.Context, uid string, req models.FightRecordRequest) (*models.FightRecord, error)
	Approve(ctx context.Context, actor *models.Account, id int64) (*models.FightRecord, error)
	ListByUsername(ctx context.Context, username string, approvedOnly bool) ([]*models.FightRecord, error)
	ListMine(ctx context.Context, uid string) ([]*models.FightRecord, error)
}

// SubmitHandler отправляет бой на модерацию.
type SubmitHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewSubmit создает SubmitHandler.
func NewSubmit(log *slog.Logger, service Service) *SubmitHandler {
	return &SubmitHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавить бой
// @Description Бой появляется в публичном списке после одобрения администратором.
// @Tags FightRecords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FightRecordRequest true "Бой"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 422 {object} response.ErrorResponse
// @Router /fight-records [post]
func (h *SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fightrecord.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.FightRecordRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	fr, err := h.service.Submit(r.Context(), uid, req)
	if err != nil {
		log.Warn("failed to submit fight record", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("fight record submitted", slog.Int64("id", fr.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(fr))
}

// MineHandler возвращает все бои текущего пользователя, включая неодобренные.
type MineHandler struct {
	log     *slog.Logger
	service Service
}

// NewMine создает MineHandler.
func NewMine(log *slog.Logger, service Service) *MineHandler {
	return &MineHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои бои
// @Tags FightRecords
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /fight-records [get]
func (h *MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fightrecord.mine"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.ListMine(r.Context(), uid)
	if err != nil {
		log.Error("failed to list fight records", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}

// ByUsernameHandler возвращает одобренные бои бойца.
type ByUsernameHandler struct {
	log     *slog.Logger
	service Service
}

// NewByUsername создает ByUsernameHandler.
func NewByUsername(log *slog.Logger, service Service) *ByUsernameHandler {
	return &ByUsernameHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Бои бойца
// @Tags FightRecords
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /profiles/{username}/fight-records [get]
func (h *ByUsernameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fightrecord.byusername"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.ListByUsername(r.Context(), username, true)
	if err != nil {
		log.Warn("failed to list fight records", slog.String("username", username), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}

// ApproveHandler одобряет бой.
type ApproveHandler struct {
	log     *slog.Logger
	service Service
}

// NewApprove создает ApproveHandler.
func NewApprove(log *slog.Logger, service Service) *ApproveHandler {
	return &ApproveHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Одобрить бой
// @Description Владелец боя должен быть верифицирован.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID боя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Владелец не верифицирован"
// @Failure 404 {object} response.ErrorResponse
// @Router /fight-records/{id}/approve [patch]
func (h *ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fightrecord.approve"

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

	fr, err := h.service.Approve(r.Context(), actor, id)
	if err != nil {
		log.Warn("failed to approve fight record", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("fight record approved", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(fr))
}
