// Package sender рассылает письма о решениях по верификации.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/metrics"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/smtp"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Результаты обработки для метрики NotificationsSent.
const (
	resultSent    = "sent"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

// Service отправляет письма через SMTP.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewService создает Service.
func NewService(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleVerification обрабатывает VerificationEvent из очереди.
// Аккаунты без email пропускаются.
func (s *Service) HandleVerification(ctx context.Context, body []byte) error {
	const op = "services.sender.HandleVerification"
	log := s.log.With(slog.String("op", op))

	var event models.VerificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal message body", sl.Err(err))
		metrics.NotificationsSent.WithLabelValues(resultFailed).Inc()
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	log = log.With(slog.String("event_id", event.ID), slog.String("username", event.Username))

	if event.Email == "" {
		log.Info("account has no email, notification skipped")
		metrics.NotificationsSent.WithLabelValues(resultSkipped).Inc()
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject, text := compose(event)
	if err := s.sendEmail([]string{event.Email}, subject, text); err != nil {
		metrics.NotificationsSent.WithLabelValues(resultFailed).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.NotificationsSent.WithLabelValues(resultSent).Inc()
	return nil
}

func compose(event models.VerificationEvent) (subject, body string) {
	if event.Decision == models.DecisionApproved {
		return "Ваш профиль верифицирован",
			fmt.Sprintf("Здравствуйте, %s!\n\nВаш профиль прошел верификацию. "+
				"Теперь он участвует в поиске и подборе соперников.", event.Username)
	}
	return "Заявка на верификацию отклонена",
		fmt.Sprintf("Здравствуйте, %s!\n\nВаша заявка на верификацию отклонена. "+
			"Проверьте данные профиля и подайте заявку повторно.", event.Username)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("smtp client close", sl.Err(err))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
