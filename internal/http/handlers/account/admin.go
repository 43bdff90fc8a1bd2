package account

import (
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

// SetFlagsHandler меняет флаги промоушена и персонала.
type SetFlagsHandler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewSetFlags создает SetFlagsHandler.
func NewSetFlags(log *slog.Logger, service Service) *SetFlagsHandler {
	return &SetFlagsHandler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Изменить флаги аккаунта
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Param request body models.AccountFlags true "Флаги"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/accounts/{username} [patch]
func (h *SetFlagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.setflags"

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
	var req models.AccountFlags
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.SetFlags(r.Context(), actor, username, req)
	if err != nil {
		log.Error("failed to set account flags", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("account flags changed", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(acc))
}

// DeleteHandler удаляет аккаунт вместе с профилем.
type DeleteHandler struct {
	log     *slog.Logger
	service Service
}

// NewDelete создает DeleteHandler.
func NewDelete(log *slog.Logger, service Service) *DeleteHandler {
	return &DeleteHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить аккаунт
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/accounts/{username} [delete]
func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.delete"

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

	if err := h.service.Delete(r.Context(), actor, username); err != nil {
		log.Error("failed to delete account", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("account deleted", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"username": username,
		"message":  "account deleted",
	}))
}
