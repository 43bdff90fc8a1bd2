// Package promotion карточки промоушенов.
package promotion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища промоушенов.
type Repository interface {
	UpsertPromotionProfile(ctx context.Context, p models.PromotionProfile) (*models.PromotionProfile, error)
	GetPromotionProfile(ctx context.Context, accountUID string) (*models.PromotionProfile, error)
}

// Service бизнес-логика промоушенов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Save создает или перезаписывает карточку промоушена actor.
func (s *Service) Save(ctx context.Context, actor *models.Account, req models.PromotionRequest) (*models.PromotionProfile, error) {
	const op = "services.promotion.Save"
	if err := access.RequireRole(actor, access.RolePromotion); err != nil {
		return nil, err
	}

	p := models.PromotionProfile{
		AccountUID:    actor.UID,
		Username:      actor.Username,
		City:          req.City,
		Creator:       req.Creator,
		Description:   req.Description,
		YoutubeLink:   req.YoutubeLink,
		InstagramLink: req.InstagramLink,
		LogoURL:       req.LogoURL,
	}
	if req.DateOfCreate != "" {
		d, err := time.Parse("2006-01-02", req.DateOfCreate)
		if err != nil {
			return nil, apperr.Validation("date_of_create must be in YYYY-MM-DD format")
		}
		p.DateOfCreate = &d
	}

	saved, err := s.repo.UpsertPromotionProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("promotion profile saved", slog.String("op", op), slog.String("username", actor.Username))
	return saved, nil
}

// Get возвращает карточку промоушена actor.
func (s *Service) Get(ctx context.Context, actor *models.Account) (*models.PromotionProfile, error) {
	const op = "services.promotion.Get"
	if err := access.RequireRole(actor, access.RolePromotion); err != nil {
		return nil, err
	}
	p, err := s.repo.GetPromotionProfile(ctx, actor.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
