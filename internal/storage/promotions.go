package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// UpsertPromotionProfile создает или перезаписывает карточку промоушена.
func (s *Storage) UpsertPromotionProfile(ctx context.Context, p models.PromotionProfile) (*models.PromotionProfile, error) {
	const op = "storage.UpsertPromotionProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO promotion_profiles (account_uid, city, creator, date_of_create, description,
				youtube_link, instagram_link, logo_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (account_uid) DO UPDATE SET
				city = EXCLUDED.city, creator = EXCLUDED.creator, date_of_create = EXCLUDED.date_of_create,
				description = EXCLUDED.description, youtube_link = EXCLUDED.youtube_link,
				instagram_link = EXCLUDED.instagram_link, logo_url = EXCLUDED.logo_url, updated_at = NOW()
			  RETURNING updated_at`
	err := s.conn(ctx).QueryRowContext(ctx, query,
		p.AccountUID, p.City, p.Creator, p.DateOfCreate, p.Description, p.YoutubeLink, p.InstagramLink, p.LogoURL,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetPromotionProfile возвращает карточку промоушена аккаунта.
func (s *Storage) GetPromotionProfile(ctx context.Context, accountUID string) (*models.PromotionProfile, error) {
	const op = "storage.GetPromotionProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var (
		p            models.PromotionProfile
		dateOfCreate sql.NullTime
	)
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT pp.account_uid, a.username, pp.city, pp.creator, pp.date_of_create, pp.description,
			pp.youtube_link, pp.instagram_link, pp.logo_url, pp.updated_at
		 FROM promotion_profiles pp
		 JOIN accounts a ON a.uid = pp.account_uid
		 WHERE pp.account_uid = $1`, accountUID,
	).Scan(&p.AccountUID, &p.Username, &p.City, &p.Creator, &dateOfCreate, &p.Description,
		&p.YoutubeLink, &p.InstagramLink, &p.LogoURL, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrPromotionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.DateOfCreate = timePtr(dateOfCreate)
	return &p, nil
}
