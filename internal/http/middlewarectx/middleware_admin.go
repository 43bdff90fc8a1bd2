package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fighters-hub/internal/http/response"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// AccountLoader загружает аккаунт по uid.
type AccountLoader interface {
	Get(ctx context.Context, uid string) (*models.Account, error)
}

// LoadAccount кладет в контекст аккаунт текущего пользователя.
// Должен стоять после JWTMiddleware.
func LoadAccount(accounts AccountLoader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LoadAccount"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			uid, ok := UserUIDFrom(r.Context())
			if !ok {
				log.Warn("user identification missing")
				response.RenderStatus(w, r, http.StatusUnauthorized, "user identification missing")
				return
			}

			acc, err := accounts.Get(r.Context(), uid)
			if err != nil {
				// Токен пережил удаление аккаунта.
				if response.StatusFor(err) == http.StatusNotFound {
					log.Warn("account from token not found", slog.String("uid", uid))
					response.RenderStatus(w, r, http.StatusUnauthorized, "account not found")
					return
				}
				log.Error("failed to load account", sl.Err(err))
				response.RenderError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), Account, acc)))
		})
	}
}

// AdminOnly пропускает только администраторов. Должен стоять после LoadAccount.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc, _ := AccountFrom(r.Context())
			if err := access.RequireRole(acc, access.RoleAdmin); err != nil {
				log.Warn("admin rights required",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Any("username", r.Context().Value(User)),
				)
				response.RenderError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccountFrom возвращает аккаунт, загруженный LoadAccount.
func AccountFrom(ctx context.Context) (*models.Account, bool) {
	acc, ok := ctx.Value(Account).(*models.Account)
	return acc, ok && acc != nil
}
