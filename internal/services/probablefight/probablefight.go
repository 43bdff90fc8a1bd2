// Package probablefight администрирование возможных боев между верифицированными бойцами.
package probablefight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища возможных боев.
type Repository interface {
	GetProfile(ctx context.Context, accountUID string) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	CreateProbableFight(ctx context.Context, pf models.ProbableFight) (int64, error)
	GetProbableFight(ctx context.Context, id int64) (*models.ProbableFight, error)
	UpdateProbableFight(ctx context.Context, pf models.ProbableFight) error
	DeleteProbableFight(ctx context.Context, id int64) error
	ListProbableFights(ctx context.Context, limit int) ([]*models.ProbableFight, error)
}

// Service бизнес-логика возможных боев.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает возможный бой.
func (s *Service) Create(ctx context.Context, actor *models.Account, req models.ProbableFightRequest) (*models.ProbableFight, error) {
	const op = "services.probablefight.Create"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}

	f1, err := s.byUsername(ctx, req.Fighter1Username)
	if err != nil {
		return nil, err
	}
	f2, err := s.byUsername(ctx, req.Fighter2Username)
	if err != nil {
		return nil, err
	}
	if err := validatePair(f1, f2); err != nil {
		return nil, err
	}

	pf := models.ProbableFight{
		Fighter1UID:    f1.AccountUID,
		Fighter2UID:    f2.AccountUID,
		PromotionName:  req.PromotionName,
		WeightCategory: req.WeightCategory,
	}
	pf.ID, err = s.repo.CreateProbableFight(ctx, pf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pf.Fighter1 = f1.Public(f1.EffectiveStatus())
	pf.Fighter2 = f2.Public(f2.EffectiveStatus())

	s.log.Info("probable fight created", slog.String("op", op), slog.Int64("id", pf.ID),
		slog.String("fighter1", f1.Username), slog.String("fighter2", f2.Username))
	return &pf, nil
}

// Update меняет возможный бой. Не переданные бойцы остаются прежними,
// итоговая пара проверяется заново.
func (s *Service) Update(ctx context.Context, actor *models.Account, id int64, upd models.ProbableFightUpdate) (*models.ProbableFight, error) {
	const op = "services.probablefight.Update"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}

	pf, err := s.repo.GetProbableFight(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f1, err := s.resolve(ctx, pf.Fighter1UID, upd.Fighter1Username)
	if err != nil {
		return nil, err
	}
	f2, err := s.resolve(ctx, pf.Fighter2UID, upd.Fighter2Username)
	if err != nil {
		return nil, err
	}
	if err := validatePair(f1, f2); err != nil {
		return nil, err
	}

	pf.Fighter1UID, pf.Fighter2UID = f1.AccountUID, f2.AccountUID
	if upd.PromotionName != nil {
		pf.PromotionName = *upd.PromotionName
	}
	if upd.WeightCategory != nil {
		pf.WeightCategory = *upd.WeightCategory
	}
	if err := s.repo.UpdateProbableFight(ctx, *pf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pf.Fighter1 = f1.Public(f1.EffectiveStatus())
	pf.Fighter2 = f2.Public(f2.EffectiveStatus())
	return pf, nil
}

// Delete удаляет возможный бой.
func (s *Service) Delete(ctx context.Context, actor *models.Account, id int64) error {
	const op = "services.probablefight.Delete"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.DeleteProbableFight(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает все возможные бои, новые первыми.
func (s *Service) List(ctx context.Context, actor *models.Account) ([]*models.ProbableFight, error) {
	const op = "services.probablefight.List"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}
	res, err := s.repo.ListProbableFights(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Service) byUsername(ctx context.Context, username string) (*models.Profile, error) {
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrFightersNotFound
	}
	return p, err
}

func (s *Service) resolve(ctx context.Context, currentUID string, username *string) (*models.Profile, error) {
	if username != nil {
		return s.byUsername(ctx, *username)
	}
	p, err := s.repo.GetProfile(ctx, currentUID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrFightersNotFound
	}
	return p, err
}

func validatePair(f1, f2 *models.Profile) error {
	if f1.AccountUID == f2.AccountUID {
		return apperr.ErrSameFighter
	}
	if !f1.IsVerified || !f2.IsVerified {
		return apperr.ErrFightersNotVerified
	}
	return nil
}
