// Package account содержит HTTP-обработчики изменения аккаунтов: правку своего
// аккаунта и администрирование чужих.
package account

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

// Service операции с аккаунтами.
type Service interface {
	UpdateAccount(ctx context.Context, uid string, upd models.AccountUpdate) (*models.Account, error)
	SetFlags(ctx context.Context, actor *models.Account, username string, flags models.AccountFlags) (*models.Account, error)
	Delete(ctx context.Context, actor *models.Account, username string) error
}

// UpdateHandler изменяет имя и почту текущего пользователя.
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
// @Summary Изменить аккаунт
// @Description Меняет имя пользователя и почту. Имя синхронизируется с профилем.
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AccountUpdate true "Изменения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Имя занято"
// @Failure 422 {object} response.ErrorResponse
// @Router /account [patch]
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := request.UserUID(w, r, log)
	if !ok {
		return
	}
	var req models.AccountUpdate
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.UpdateAccount(r.Context(), uid, req)
	if err != nil {
		log.Error("failed to update account", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("account updated", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(acc))
}
