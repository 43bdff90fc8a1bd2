// Package sender собирает notification-sender: потребитель очереди решений по верификации.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/fighters-hub/internal/services/sender"
)

// VerificationQueue очередь решений по верификации.
const VerificationQueue = "notification.verification"

const workers = 4

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("rabbitmq url is not set")
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewService(transport, logger),
		logger:        logger,
	}, nil
}

// Run потребляет очередь до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.Consume(ctx, a.logger, a.ch, VerificationQueue, workers, a.senderService.HandleVerification)
	if err != nil {
		a.logger.Error("failed to start notification.verification consumer", sl.Err(err))
		return err
	}
	a.logger.Info("consuming", slog.String("queue", VerificationQueue))

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
