// Package substatus ведет журнал коротких статусов бойца.
package substatus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// MaxLength максимальная длина саб-статуса в символах.
const MaxLength = 255

// Repository методы хранилища саб-статусов.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProfile(ctx context.Context, accountUID string) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	AddSubStatus(ctx context.Context, profileUID, message string) (*models.SubStatus, error)
	GetSubStatus(ctx context.Context, id int64) (*models.SubStatus, error)
	LatestSubStatus(ctx context.Context, profileUID string) (*models.SubStatus, bool, error)
	ListSubStatuses(ctx context.Context, profileUID string) ([]*models.SubStatus, error)
	SetDisplayStatus(ctx context.Context, accountUID, message string) error
}

// Cache сбрасывает кэш публичного профиля.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Service бизнес-логика саб-статусов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Post добавляет саб-статус и делает его отображаемым статусом профиля.
func (s *Service) Post(ctx context.Context, uid, message string) (*models.SubStatus, error) {
	const op = "services.substatus.Post"
	message, err := normalize(message)
	if err != nil {
		return nil, err
	}
	st, err := s.append(ctx, uid, message)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// Edit меняет текст саб-статуса владельца. Журнал только дополняется,
// поэтому правка создает новую запись с новым текстом.
func (s *Service) Edit(ctx context.Context, uid string, id int64, message string) (*models.SubStatus, error) {
	const op = "services.substatus.Edit"
	message, err := normalize(message)
	if err != nil {
		return nil, err
	}

	orig, err := s.repo.GetSubStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if orig.ProfileUID != uid {
		return nil, apperr.ErrNotOwner
	}

	st, err := s.append(ctx, uid, message)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

func (s *Service) append(ctx context.Context, uid, message string) (*models.SubStatus, error) {
	var (
		st       *models.SubStatus
		username string
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetProfile(ctx, uid)
		if err != nil {
			return err
		}
		username = p.Username
		st, err = s.repo.AddSubStatus(ctx, uid, message)
		if err != nil {
			return err
		}
		return s.repo.SetDisplayStatus(ctx, uid, message)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, cache.ProfileKey(username)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("username", username), sl.Err(err))
	}
	return st, nil
}

// Effective возвращает эффективный статус профиля: последний саб-статус
// или статус из перечисления, если журнал пуст.
func (s *Service) Effective(ctx context.Context, username string) (string, error) {
	const op = "services.substatus.Effective"
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	latest, ok, err := s.repo.LatestSubStatus(ctx, p.AccountUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		return latest.Message, nil
	}
	return string(p.Status), nil
}

// History возвращает журнал владельца, новые записи первыми.
func (s *Service) History(ctx context.Context, uid string) ([]*models.SubStatus, error) {
	const op = "services.substatus.History"
	res, err := s.repo.ListSubStatuses(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func normalize(message string) (string, error) {
	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < 1 || n > MaxLength {
		return "", apperr.ErrSubStatusLength
	}
	return message, nil
}
