// Package verification ведет очередь заявок на верификацию бойцов.
//
// Пользователь подает заявку после оплаты, администратор одобряет или отклоняет ее.
// Каждое решение после фиксации транзакции публикуется в RabbitMQ для
// notification-sender. Ошибка публикации только логируется.
package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/metrics"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища, нужные для верификации.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAccountByUID(ctx context.Context, uid string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetProfile(ctx context.Context, accountUID string) (*models.Profile, error)
	SetAccountVerified(ctx context.Context, uid string, verified bool) error
	CreateWaitingVerification(ctx context.Context, w models.WaitingVerification) (*models.WaitingVerification, error)
	FindPendingByAccount(ctx context.Context, accountUID string) (*models.WaitingVerification, bool, error)
	DeleteWaitingVerification(ctx context.Context, accountUID string) (int64, error)
	ListWaitingVerifications(ctx context.Context, limit, offset int) ([]*models.WaitingVerification, error)
}

// Mirror переносит флаг верификации в профиль.
type Mirror interface {
	AfterAccountSaved(ctx context.Context, acc *models.Account) ([]models.MirrorField, error)
}

// Publisher публикует события о решениях.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Cache сбрасывает кэш профиля после смены флага.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Service бизнес-логика верификации.
type Service struct {
	repo      Repository
	mirror    Mirror
	publisher Publisher
	cache     Cache
	log       *slog.Logger
	now       func() time.Time
}

// NewService создает Service. publisher может быть nil, тогда события не отправляются.
func NewService(repo Repository, mirror Mirror, publisher Publisher, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		mirror:    mirror,
		publisher: publisher,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// SubmitPayment ставит аккаунт в очередь, сохраняя снимок профиля.
func (s *Service) SubmitPayment(ctx context.Context, uid string) (*models.WaitingVerification, error) {
	const op = "services.verification.SubmitPayment"

	var w *models.WaitingVerification
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		acc, err := s.repo.GetAccountByUID(ctx, uid)
		if err != nil {
			return err
		}
		if acc.IsVerified {
			return apperr.ErrAlreadyVerified
		}
		if _, pending, err := s.repo.FindPendingByAccount(ctx, uid); err != nil {
			return err
		} else if pending {
			return apperr.ErrAlreadyPending
		}

		p, err := s.repo.GetProfile(ctx, uid)
		if err != nil {
			return err
		}
		w, err = s.repo.CreateWaitingVerification(ctx, models.WaitingVerification{
			AccountUID: uid,
			Username:   p.Username,
			FullName:   p.FullName,
			City:       p.City,
			Height:     p.Height,
			Weight:     p.Weight,
			BirthDate:  p.BirthDate,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.VerificationTransitions.WithLabelValues(metrics.TransitionSubmitted).Inc()
	s.log.Info("verification requested", slog.String("op", op), slog.String("username", w.Username))
	return w, nil
}

// Approve верифицирует пользователя и убирает его из очереди. Для уже
// верифицированного пользователя ничего не меняет и возвращает alreadyVerified=true.
func (s *Service) Approve(ctx context.Context, actor *models.Account, username string) (alreadyVerified bool, err error) {
	const op = "services.verification.Approve"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return false, err
	}

	var acc *models.Account
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.GetAccountByUsername(ctx, username)
		if err != nil {
			return err
		}
		if acc.IsVerified {
			alreadyVerified = true
			return nil
		}
		if err := s.repo.SetAccountVerified(ctx, acc.UID, true); err != nil {
			return err
		}
		acc.IsVerified = true
		if _, err := s.mirror.AfterAccountSaved(ctx, acc); err != nil {
			return err
		}
		_, err = s.repo.DeleteWaitingVerification(ctx, acc.UID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if alreadyVerified {
		metrics.VerificationTransitions.WithLabelValues(metrics.TransitionAlreadyVerified).Inc()
		return true, nil
	}

	metrics.VerificationTransitions.WithLabelValues(metrics.TransitionApproved).Inc()
	s.log.Info("user verified", slog.String("op", op), slog.String("username", username))
	s.invalidate(ctx, acc.Username)
	s.publish(ctx, acc, models.DecisionApproved)
	return false, nil
}

// Reject убирает заявку пользователя из очереди без верификации.
func (s *Service) Reject(ctx context.Context, actor *models.Account, username string) error {
	const op = "services.verification.Reject"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return err
	}

	acc, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := s.repo.DeleteWaitingVerification(ctx, acc.UID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return apperr.ErrNotFoundInQueue
	}

	metrics.VerificationTransitions.WithLabelValues(metrics.TransitionRejected).Inc()
	s.log.Info("verification rejected", slog.String("op", op), slog.String("username", username))
	s.publish(ctx, acc, models.DecisionRejected)
	return nil
}

// ListPending возвращает очередь заявок, старые первыми.
func (s *Service) ListPending(ctx context.Context, actor *models.Account, page models.Page) ([]*models.WaitingVerification, error) {
	const op = "services.verification.ListPending"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}
	res, err := s.repo.ListWaitingVerifications(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Service) publish(ctx context.Context, acc *models.Account, decision models.Decision) {
	if s.publisher == nil {
		return
	}
	event := models.VerificationEvent{
		ID:       uuid.NewString(),
		Username: acc.Username,
		Decision: decision,
		At:       s.now().UTC(),
	}
	if acc.Email != nil {
		event.Email = *acc.Email
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyVerification, event); err != nil {
		s.log.Error("failed to publish verification event",
			slog.String("username", acc.Username), slog.String("decision", string(decision)), sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, username string) {
	if err := s.cache.Invalidate(ctx, cache.ProfileKey(username)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("username", username), sl.Err(err))
	}
}
