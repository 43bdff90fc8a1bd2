package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
)

// Handler обрабатывает тело сообщения. Ошибка возвращает сообщение в очередь.
type Handler func(ctx context.Context, body []byte) error

// Consume запускает потребителя очереди. Одновременно обрабатывается не больше
// workers сообщений. Возвращается сразу, обработка идет до отмены ctx.
func Consume(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, workers int, handler Handler) error {
	const op = "rabbitmq.Consume"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if workers < 1 {
		workers = 1
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	go dispatch(ctx, log, delivery, workers, handler)
	return nil
}

// dispatch раздает сообщения обработчикам, пока не закроется delivery или не
// отменится ctx. Сообщение, не взятое в работу до отмены, возвращается в очередь.
func dispatch(ctx context.Context, log *slog.Logger, delivery <-chan amqp.Delivery, workers int, handler Handler) {
	sem := make(chan struct{}, workers)
	for {
		select {
		case d, ok := <-delivery:
			if !ok {
				log.Info("delivery channel closed")
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				if err := d.Nack(false, true); err != nil {
					log.Error("failed to requeue message", sl.Err(err))
				}
				return
			}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				if err := handler(ctx, d.Body); err != nil {
					log.Error("failed to handle message", sl.Err(err))
					if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
						log.Error("failed to nack message", sl.Err(nackErr))
					}
					return
				}
				if ackErr := d.Ack(false); ackErr != nil {
					log.Error("failed to ack message", sl.Err(ackErr))
				}
			}(d)
		case <-ctx.Done():
			return
		}
	}
}
