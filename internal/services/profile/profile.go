// Package profile содержит бизнес-логику профилей бойцов.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// DateLayout формат дат в запросах.
const DateLayout = "2006-01-02"

// Repository методы хранилища профилей.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProfile(ctx context.Context, accountUID string) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	ListVerifiedProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	LatestSubStatus(ctx context.Context, profileUID string) (*models.SubStatus, bool, error)
}

// Mirror переносит изменения профиля в аккаунт.
type Mirror interface {
	AfterProfileSaved(ctx context.Context, p *models.Profile) ([]models.MirrorField, error)
}

// Cache кэш публичных профилей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Service бизнес-логика профилей.
type Service struct {
	repo     Repository
	mirror   Mirror
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, mirror Mirror, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		mirror:   mirror,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetMine возвращает собственный профиль пользователя целиком.
func (s *Service) GetMine(ctx context.Context, uid string) (*models.Profile, error) {
	const op = "services.profile.GetMine"
	p, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByUsername возвращает публичный профиль с эффективным статусом.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.PublicProfile, error) {
	const op = "services.profile.GetByUsername"
	key := cache.ProfileKey(username)

	var cached models.PublicProfile
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read profile from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	status, err := s.effectiveStatus(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	public := p.Public(status)

	if err := s.cache.Set(ctx, key, public, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", key), sl.Err(err))
	}
	return &public, nil
}

// effectiveStatus берет последний саб-статус из журнала, иначе статус из перечисления.
func (s *Service) effectiveStatus(ctx context.Context, p *models.Profile) (string, error) {
	latest, ok, err := s.repo.LatestSubStatus(ctx, p.AccountUID)
	if err != nil {
		return "", err
	}
	if ok {
		return latest.Message, nil
	}
	return string(p.Status), nil
}

// UpdateMine применяет частичное изменение профиля владельцем.
// Смена username переносится в аккаунт в той же транзакции.
func (s *Service) UpdateMine(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.Profile, error) {
	const op = "services.profile.UpdateMine"

	var (
		p           *models.Profile
		oldUsername string
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetProfile(ctx, uid)
		if err != nil {
			return err
		}
		oldUsername = p.Username
		if err := apply(p, upd); err != nil {
			return err
		}
		if err := s.repo.UpdateProfile(ctx, p); err != nil {
			return err
		}
		_, err = s.mirror.AfterProfileSaved(ctx, p)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	keys := []string{cache.ProfileKey(oldUsername)}
	if p.Username != oldUsername {
		keys = append(keys, cache.ProfileKey(p.Username))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.Any("keys", keys), sl.Err(err))
	}
	return p, nil
}

// ListVerified возвращает страницу верифицированных профилей.
func (s *Service) ListVerified(ctx context.Context, page models.Page) ([]models.PublicProfile, error) {
	const op = "services.profile.ListVerified"
	profiles, err := s.repo.ListVerifiedProfiles(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res := make([]models.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		res = append(res, p.Public(p.EffectiveStatus()))
	}
	return res, nil
}

func apply(p *models.Profile, upd models.ProfileUpdate) error {
	if upd.Status != nil {
		st, ok := models.ParseStatus(*upd.Status)
		if !ok {
			return apperr.ErrInvalidStatus
		}
		p.Status = st
	}
	if upd.BirthDate != nil {
		if *upd.BirthDate == "" {
			p.BirthDate = nil
		} else {
			bd, err := time.Parse(DateLayout, *upd.BirthDate)
			if err != nil {
				return apperr.Validation("birth_date must be in YYYY-MM-DD format")
			}
			p.BirthDate = &bd
		}
	}
	if upd.Username != nil {
		p.Username = strings.TrimSpace(*upd.Username)
	}
	setString(&p.FullName, upd.FullName)
	setString(&p.Sport, upd.Sport)
	setString(&p.City, upd.City)
	setString(&p.SportTime, upd.SportTime)
	setString(&p.ProfilePicture, upd.ProfilePicture)
	setString(&p.Description, upd.Description)
	setString(&p.Rank, upd.Rank)
	setString(&p.RankFile, upd.RankFile)
	setString(&p.InstagramLink, upd.InstagramLink)
	if upd.Weight != nil {
		p.Weight = upd.Weight
	}
	if upd.Height != nil {
		p.Height = upd.Height
	}
	if upd.VideoLinks != nil {
		p.VideoLinks = *upd.VideoLinks
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
