package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/account"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/favourite"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/fightrecord"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/home"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/news"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/post"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/probablefight"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/profile"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/promotion"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/search"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/substatus"
	"github.com/magabrotheeeer/fighters-hub/internal/http/handlers/verification"
	"github.com/magabrotheeeer/fighters-hub/internal/http/middlewarectx"
	accountservice "github.com/magabrotheeeer/fighters-hub/internal/services/account"
	favouriteservice "github.com/magabrotheeeer/fighters-hub/internal/services/favourite"
	fightrecordservice "github.com/magabrotheeeer/fighters-hub/internal/services/fightrecord"
	homeservice "github.com/magabrotheeeer/fighters-hub/internal/services/home"
	"github.com/magabrotheeeer/fighters-hub/internal/services/matchmaking"
	newsservice "github.com/magabrotheeeer/fighters-hub/internal/services/news"
	probablefightservice "github.com/magabrotheeeer/fighters-hub/internal/services/probablefight"
	profileservice "github.com/magabrotheeeer/fighters-hub/internal/services/profile"
	promotionservice "github.com/magabrotheeeer/fighters-hub/internal/services/promotion"
	"github.com/magabrotheeeer/fighters-hub/internal/services/social"
	substatusservice "github.com/magabrotheeeer/fighters-hub/internal/services/substatus"
	verificationservice "github.com/magabrotheeeer/fighters-hub/internal/services/verification"
)

// Services набор сервисов, которые обслуживает HTTP-слой.
type Services struct {
	Accounts       *accountservice.Service
	Profiles       *profileservice.Service
	Verification   *verificationservice.Service
	SubStatus      *substatusservice.Service
	Favourites     *favouriteservice.Service
	Social         *social.Service
	FightRecords   *fightrecordservice.Service
	ProbableFights *probablefightservice.Service
	News           *newsservice.Service
	Promotions     *promotionservice.Service
	Matchmaking    *matchmaking.Service
	Home           *homeservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, tokens middlewarectx.TokenParser,
	db health.Pinger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	r.Get("/health", health.New(logger, db).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Регистрация и вход с ограничением частоты по IP
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit))
			r.Post("/register", register.New(logger, s.Accounts).ServeHTTP)
			r.Post("/login", login.New(logger, s.Accounts).ServeHTTP)
		})

		// Открытые конечные точки
		r.Get("/home", home.New(logger, s.Home).ServeHTTP)
		r.Get("/search", search.New(logger, s.Matchmaking).ServeHTTP)
		r.Get("/profiles", profile.NewList(logger, s.Profiles).ServeHTTP)
		r.Get("/profiles/{username}", profile.NewPublic(logger, s.Profiles).ServeHTTP)
		r.Get("/profiles/{username}/posts", post.NewListByAuthor(logger, s.Social).ServeHTTP)
		r.Get("/profiles/{username}/fight-records", fightrecord.NewByUsername(logger, s.FightRecords).ServeHTTP)
		r.Get("/news", news.NewList(logger, s.News).ServeHTTP)
		r.Get("/news/{id}", news.NewGet(logger, s.News).ServeHTTP)
		r.Get("/posts/{id}/comments", post.NewComments(logger, s.Social).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))

			r.Get("/profile", profile.NewMine(logger, s.Profiles).ServeHTTP)
			r.Patch("/profile", profile.NewUpdate(logger, s.Profiles).ServeHTTP)
			r.Patch("/account", account.NewUpdate(logger, s.Accounts).ServeHTTP)
			r.Post("/payment", verification.NewSubmit(logger, s.Verification).ServeHTTP)

			r.Post("/substatus/create", substatus.NewCreate(logger, s.SubStatus).ServeHTTP)
			r.Patch("/substatus/{id}/edit", substatus.NewEdit(logger, s.SubStatus).ServeHTTP)
			r.Get("/substatus", substatus.NewHistory(logger, s.SubStatus).ServeHTTP)

			r.Get("/favourites", favourite.NewList(logger, s.Favourites).ServeHTTP)
			r.Post("/favourites", favourite.NewAdd(logger, s.Favourites).ServeHTTP)
			r.Delete("/favourites/{username}", favourite.NewRemove(logger, s.Favourites).ServeHTTP)

			r.Post("/posts", post.NewCreate(logger, s.Social).ServeHTTP)
			r.Delete("/posts/{id}", post.NewDelete(logger, s.Social).ServeHTTP)
			r.Post("/posts/{id}/like", post.NewLike(logger, s.Social).ServeHTTP)
			r.Delete("/posts/{id}/like", post.NewUnlike(logger, s.Social).ServeHTTP)
			r.Post("/posts/{id}/comments", post.NewComment(logger, s.Social).ServeHTTP)

			r.Get("/fight-records", fightrecord.NewMine(logger, s.FightRecords).ServeHTTP)
			r.Post("/fight-records", fightrecord.NewSubmit(logger, s.FightRecords).ServeHTTP)

			// Ручки, которым нужен аккаунт целиком
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.LoadAccount(s.Accounts, logger))

				r.Get("/promotion", promotion.NewGet(logger, s.Promotions).ServeHTTP)
				r.Put("/promotion", promotion.NewSave(logger, s.Promotions).ServeHTTP)

				// Администрирование
				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.AdminOnly(logger))

					r.Get("/set-verification/{username}", verification.NewApprove(logger, s.Verification).ServeHTTP)
					r.Post("/reject-verification/{username}", verification.NewReject(logger, s.Verification).ServeHTTP)
					r.Get("/waiting-verification", verification.NewPending(logger, s.Verification).ServeHTTP)

					r.Patch("/fight-records/{id}/approve", fightrecord.NewApprove(logger, s.FightRecords).ServeHTTP)

					r.Get("/probable-fights", probablefight.NewList(logger, s.ProbableFights).ServeHTTP)
					r.Post("/probable-fights", probablefight.NewCreate(logger, s.ProbableFights).ServeHTTP)
					r.Patch("/probable-fights/{id}", probablefight.NewUpdate(logger, s.ProbableFights).ServeHTTP)
					r.Delete("/probable-fights/{id}", probablefight.NewDelete(logger, s.ProbableFights).ServeHTTP)

					r.Post("/news", news.NewCreate(logger, s.News).ServeHTTP)
					r.Patch("/news/{id}", news.NewUpdate(logger, s.News).ServeHTTP)
					r.Delete("/news/{id}", news.NewDelete(logger, s.News).ServeHTTP)

					r.Patch("/admin/accounts/{username}", account.NewSetFlags(logger, s.Accounts).ServeHTTP)
					r.Delete("/admin/accounts/{username}", account.NewDelete(logger, s.Accounts).ServeHTTP)
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
