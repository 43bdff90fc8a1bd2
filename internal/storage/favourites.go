package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// AddFavourite добавляет профиль в избранное аккаунта.
// Повторное добавление возвращает apperr.ErrAlreadyFavourite.
func (s *Storage) AddFavourite(ctx context.Context, accountUID, profileUID string) (int64, error) {
	const op = "storage.AddFavourite"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO favourites (account_uid, profile_uid) VALUES ($1, $2) RETURNING id`,
		accountUID, profileUID,
	).Scan(&id)
	if err != nil {
		if name, ok := isUniqueViolation(err); ok && name == "favourites_account_profile_key" {
			return 0, fmt.Errorf("%s: %w", op, apperr.ErrAlreadyFavourite)
		}
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, apperr.ErrProfileNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// DeleteFavourite убирает профиль из избранного.
func (s *Storage) DeleteFavourite(ctx context.Context, accountUID, profileUID string) error {
	const op = "storage.DeleteFavourite"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`DELETE FROM favourites WHERE account_uid = $1 AND profile_uid = $2`, accountUID, profileUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrFavouriteNotFound)
}

// ListFavourites возвращает избранные профили аккаунта, последние добавленные первыми.
func (s *Storage) ListFavourites(ctx context.Context, accountUID string) ([]*models.Favourite, error) {
	const op = "storage.ListFavourites"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT f.id, f.account_uid, f.created_at, ` + profileColumns + `
			  FROM favourites f
			  JOIN profiles p ON p.account_uid = f.profile_uid
			  WHERE f.account_uid = $1
			  ORDER BY f.created_at DESC, f.id DESC`
	rows, err := s.conn(ctx).QueryContext(ctx, query, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.Favourite, 0)
	for rows.Next() {
		var (
			fav models.Favourite
			r   profileRow
		)
		if err := rows.Scan(append([]any{&fav.ID, &fav.AccountUID, &fav.CreatedAt}, r.dest()...)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p, err := r.profile()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		fav.ProfileUID = p.AccountUID
		fav.Profile = p.Public(p.EffectiveStatus())
		res = append(res, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
