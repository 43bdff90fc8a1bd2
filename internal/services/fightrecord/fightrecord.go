// Package fightrecord ведет послужной список бойцов. Новые записи ждут
// одобрения администратора и до этого видны только владельцу.
package fightrecord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const dateLayout = "2006-01-02"

// Repository методы хранилища боев.
type Repository interface {
	GetAccountByUID(ctx context.Context, uid string) (*models.Account, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	CreateFightRecord(ctx context.Context, fr models.FightRecord) (int64, error)
	GetFightRecord(ctx context.Context, id int64) (*models.FightRecord, error)
	ApproveFightRecord(ctx context.Context, id int64) error
	ListFightRecords(ctx context.Context, profileUID string, approvedOnly bool) ([]*models.FightRecord, error)
}

// Service бизнес-логика послужного списка.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit добавляет бой в список uid. Запись создается неодобренной.
func (s *Service) Submit(ctx context.Context, uid string, req models.FightRecordRequest) (*models.FightRecord, error) {
	const op = "services.fightrecord.Submit"

	result := models.FightResult(strings.ToLower(req.Result))
	switch result {
	case models.ResultWin, models.ResultLoss, models.ResultDraw:
	default:
		return nil, apperr.Validation("result must be one of: win, loss, draw")
	}
	date, err := time.Parse(dateLayout, req.FightDate)
	if err != nil {
		return nil, apperr.Validation("fight_date must be in YYYY-MM-DD format")
	}

	id, err := s.repo.CreateFightRecord(ctx, models.FightRecord{
		ProfileUID: uid,
		Opponent:   strings.TrimSpace(req.Opponent),
		Event:      strings.TrimSpace(req.Event),
		Result:     result,
		FightDate:  date,
		VideoURL:   req.VideoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fr, err := s.repo.GetFightRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("fight record submitted", slog.String("op", op), slog.Int64("id", id))
	return fr, nil
}

// Approve одобряет бой. Владелец записи должен быть верифицирован.
func (s *Service) Approve(ctx context.Context, actor *models.Account, id int64) (*models.FightRecord, error) {
	const op = "services.fightrecord.Approve"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}

	fr, err := s.repo.GetFightRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	owner, err := s.repo.GetAccountByUID(ctx, fr.ProfileUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !owner.IsVerified {
		return nil, apperr.ErrNotVerified
	}
	if err := s.repo.ApproveFightRecord(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fr.IsApproved = true

	s.log.Info("fight record approved", slog.String("op", op), slog.Int64("id", id))
	return fr, nil
}

// ListByUsername возвращает бои пользователя. approvedOnly скрывает неодобренные.
func (s *Service) ListByUsername(ctx context.Context, username string, approvedOnly bool) ([]*models.FightRecord, error) {
	const op = "services.fightrecord.ListByUsername"
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListFightRecords(ctx, p.AccountUID, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListMine возвращает все бои uid, включая ожидающие одобрения.
func (s *Service) ListMine(ctx context.Context, uid string) ([]*models.FightRecord, error) {
	const op = "services.fightrecord.ListMine"
	res, err := s.repo.ListFightRecords(ctx, uid, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
