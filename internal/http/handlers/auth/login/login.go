// Package login реализует HTTP-обработчик входа по номеру телефона или имени пользователя.
//
// При успешной аутентификации возвращается JWT с uid, именем и ролью.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fighters-hub/internal/http/request"
	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аккаунтов
	validate *validator.Validate // Валидатор входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Account, string, error)
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по телефону или имени и паролю. Возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	acc, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("login success", slog.String("username", acc.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":    token,
		"uid":      acc.UID,
		"username": acc.Username,
		"role":     string(access.RoleOf(acc)),
	}))
}
