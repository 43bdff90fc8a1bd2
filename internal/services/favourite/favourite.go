// Package favourite управляет избранными профилями пользователя.
package favourite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища избранного.
type Repository interface {
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	AddFavourite(ctx context.Context, accountUID, profileUID string) (int64, error)
	DeleteFavourite(ctx context.Context, accountUID, profileUID string) error
	ListFavourites(ctx context.Context, accountUID string) ([]*models.Favourite, error)
}

// Service бизнес-логика избранного.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Add добавляет профиль username в избранное uid.
func (s *Service) Add(ctx context.Context, uid, username string) (int64, error) {
	const op = "services.favourite.Add"
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if p.AccountUID == uid {
		return 0, apperr.ErrFavouriteSelf
	}
	id, err := s.repo.AddFavourite(ctx, uid, p.AccountUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("favourite added", slog.String("op", op), slog.String("profile", username))
	return id, nil
}

// Remove убирает профиль username из избранного uid.
func (s *Service) Remove(ctx context.Context, uid, username string) error {
	const op = "services.favourite.Remove"
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteFavourite(ctx, uid, p.AccountUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает избранное uid.
func (s *Service) List(ctx context.Context, uid string) ([]*models.Favourite, error) {
	const op = "services.favourite.List"
	res, err := s.repo.ListFavourites(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
