// Package verification содержит HTTP-обработчики процесса верификации бойцов:
// подачу заявки после оплаты и решения администратора.
package verification

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

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service процесс верификации.
type Service interface {
	SubmitPayment(ctx context.Context, uid string) (*models.WaitingVerification, error)
	Approve(ctx context.Context, actor *models.Account, username string) (bool, error)
	Reject(ctx context.Context, actor *models.Account, username string) error
	ListPending(ctx context.Context, actor *models.Account, page models.Page) ([]*models.WaitingVerification, error)
}

// SubmitHandler ставит текущего пользователя в очередь на верификацию.
type SubmitHandler struct {
	log     *slog.Logger
	service Service
}

// NewSubmit создает SubmitHandler.
func NewSubmit(log *slog.Logger, service Service) *SubmitHandler {
	return &SubmitHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подать заявку на верификацию
// @Description Вызывается после оплаты. Сохраняет снимок профиля в очереди.
// @Tags Verification
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Уже верифицирован или заявка уже подана"
// @Router /payment [post]
func (h *SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}

	wv, err := h.service.SubmitPayment(r.Context(), uid)
	if err != nil {
		log.Warn("failed to submit verification request", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("verification request submitted", slog.String("username", wv.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(wv))
}

// ApproveHandler подтверждает верификацию пользователя.
type ApproveHandler struct {
	log     *slog.Logger
	service Service
}

// NewApprove создает ApproveHandler.
func NewApprove(log *slog.Logger, service Service) *ApproveHandler {
	return &ApproveHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтвердить верификацию
// @Description Повторное подтверждение уже верифицированного пользователя ничего не меняет.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /set-verification/{username} [get]
func (h *ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.approve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	already, err := h.service.Approve(r.Context(), actor, username)
	if err != nil {
		log.Error("failed to approve verification", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	msg := "user verified"
	if already {
		msg = "user is already verified"
	}
	log.Info(msg, slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"username": username,
		"message":  msg,
	}))
}

// RejectHandler отклоняет заявку на верификацию.
type RejectHandler struct {
	log     *slog.Logger
	service Service
}

// NewReject создает RejectHandler.
func NewReject(log *slog.Logger, service Service) *RejectHandler {
	return &RejectHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отклонить заявку
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Нет в очереди"
// @Router /reject-verification/{username} [post]
func (h *RejectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.reject"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}
	username, ok := request.Username(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), actor, username); err != nil {
		log.Warn("failed to reject verification", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("verification rejected", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"username": username,
		"message":  "verification request rejected",
	}))
}

// PendingHandler возвращает очередь заявок, старые первыми.
type PendingHandler struct {
	log     *slog.Logger
	service Service
}

// NewPending создает PendingHandler.
func NewPending(log *slog.Logger, service Service) *PendingHandler {
	return &PendingHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Очередь на верификацию
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Router /waiting-verification [get]
func (h *PendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.pending"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := request.Account(w, r, log)
	if !ok {
		return
	}

	list, err := h.service.ListPending(r.Context(), actor, request.Page(r, defaultPageSize, maxPageSize))
	if err != nil {
		log.Error("failed to list waiting verifications", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}
