// Package api собирает HTTP-приложение платформы: хранилище, кэш, сервисы и маршруты.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/migrations"
	accountservice "github.com/magabrotheeeer/fighters-hub/internal/services/account"
	favouriteservice "github.com/magabrotheeeer/fighters-hub/internal/services/favourite"
	fightrecordservice "github.com/magabrotheeeer/fighters-hub/internal/services/fightrecord"
	homeservice "github.com/magabrotheeeer/fighters-hub/internal/services/home"
	"github.com/magabrotheeeer/fighters-hub/internal/services/matchmaking"
	"github.com/magabrotheeeer/fighters-hub/internal/services/mirror"
	newsservice "github.com/magabrotheeeer/fighters-hub/internal/services/news"
	probablefightservice "github.com/magabrotheeeer/fighters-hub/internal/services/probablefight"
	profileservice "github.com/magabrotheeeer/fighters-hub/internal/services/profile"
	promotionservice "github.com/magabrotheeeer/fighters-hub/internal/services/promotion"
	"github.com/magabrotheeeer/fighters-hub/internal/services/social"
	substatusservice "github.com/magabrotheeeer/fighters-hub/internal/services/substatus"
	verificationservice "github.com/magabrotheeeer/fighters-hub/internal/services/verification"
	"github.com/magabrotheeeer/fighters-hub/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает зависимости, применяет миграции, создает администратора
// из конфига и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	// Без брокера решения по верификации не рассылаются.
	var publisher verificationservice.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		app.conn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		app.ch = ch
		publisher = rabbitmq.NewPublisher(ch, rabbitmq.Exchange)
	} else {
		logger.Warn("rabbitmq url is empty, verification notifications are disabled")
	}

	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	mediator := mirror.New(db, logger)
	matcher := matchmaking.NewService(db, logger)
	newsService := newsservice.NewService(db, cacheRedis, cfg.CacheTTL, logger)

	services := Services{
		Accounts:       accountservice.NewService(db, mediator, tokens, cacheRedis, logger),
		Profiles:       profileservice.NewService(db, mediator, cacheRedis, cfg.CacheTTL, logger),
		Verification:   verificationservice.NewService(db, mediator, publisher, cacheRedis, logger),
		SubStatus:      substatusservice.NewService(db, cacheRedis, logger),
		Favourites:     favouriteservice.NewService(db, logger),
		Social:         social.NewService(db, logger),
		FightRecords:   fightrecordservice.NewService(db, logger),
		ProbableFights: probablefightservice.NewService(db, logger),
		News:           newsService,
		Promotions:     promotionservice.NewService(db, logger),
		Matchmaking:    matcher,
		Home: homeservice.NewService(db, db, newsService, matcher,
			matchmaking.DefaultBuckets(), cfg.Feed, logger),
	}

	if err := services.Accounts.EnsureAdmin(ctx, cfg.Admin); err != nil {
		app.close()
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, tokens, db.DB, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
