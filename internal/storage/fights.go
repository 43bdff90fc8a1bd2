package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const fightRecordSelect = `SELECT fr.id, fr.profile_uid, p.username, fr.opponent, fr.event, fr.result,
		fr.fight_date, fr.video_url, fr.is_approved, fr.created_at
	FROM fight_records fr
	JOIN profiles p ON p.account_uid = fr.profile_uid`

func scanFightRecord(row scanner) (*models.FightRecord, error) {
	var (
		fr       models.FightRecord
		result   string
		videoURL sql.NullString
	)
	err := row.Scan(&fr.ID, &fr.ProfileUID, &fr.Username, &fr.Opponent, &fr.Event, &result,
		&fr.FightDate, &videoURL, &fr.IsApproved, &fr.CreatedAt)
	if err != nil {
		return nil, err
	}
	fr.Result = models.FightResult(result)
	fr.VideoURL = strPtr(videoURL)
	return &fr, nil
}

// CreateFightRecord сохраняет бой на модерацию.
func (s *Storage) CreateFightRecord(ctx context.Context, fr models.FightRecord) (int64, error) {
	const op = "storage.CreateFightRecord"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO fight_records (profile_uid, opponent, event, result, fight_date, video_url)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		fr.ProfileUID, fr.Opponent, fr.Event, string(fr.Result), fr.FightDate, fr.VideoURL,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, apperr.ErrProfileNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetFightRecord возвращает бой по id.
func (s *Storage) GetFightRecord(ctx context.Context, id int64) (*models.FightRecord, error) {
	const op = "storage.GetFightRecord"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	fr, err := scanFightRecord(s.conn(ctx).QueryRowContext(ctx, fightRecordSelect+` WHERE fr.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrFightRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fr, nil
}

// ApproveFightRecord отмечает бой как одобренный.
func (s *Storage) ApproveFightRecord(ctx context.Context, id int64) error {
	const op = "storage.ApproveFightRecord"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `UPDATE fight_records SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrFightRecordNotFound)
}

// ListFightRecords возвращает бои профиля, последние первыми.
func (s *Storage) ListFightRecords(ctx context.Context, profileUID string, approvedOnly bool) ([]*models.FightRecord, error) {
	const op = "storage.ListFightRecords"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		fightRecordSelect+` WHERE fr.profile_uid = $1 AND (NOT $2 OR fr.is_approved)
		ORDER BY fr.fight_date DESC, fr.id DESC`, profileUID, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.FightRecord, 0)
	for rows.Next() {
		fr, err := scanFightRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

const probableFightSelect = `SELECT pf.id, pf.fighter1_uid, pf.fighter2_uid, pf.promotion_name, pf.weight_category, pf.created_at
	FROM probable_fights pf`

// CreateProbableFight сохраняет возможный бой.
func (s *Storage) CreateProbableFight(ctx context.Context, pf models.ProbableFight) (int64, error) {
	const op = "storage.CreateProbableFight"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO probable_fights (fighter1_uid, fighter2_uid, promotion_name, weight_category)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		pf.Fighter1UID, pf.Fighter2UID, pf.PromotionName, pf.WeightCategory,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, apperr.ErrFightersNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetProbableFight возвращает возможный бой без карточек бойцов.
func (s *Storage) GetProbableFight(ctx context.Context, id int64) (*models.ProbableFight, error) {
	const op = "storage.GetProbableFight"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var pf models.ProbableFight
	err := s.conn(ctx).QueryRowContext(ctx, probableFightSelect+` WHERE pf.id = $1`, id).
		Scan(&pf.ID, &pf.Fighter1UID, &pf.Fighter2UID, &pf.PromotionName, &pf.WeightCategory, &pf.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrProbableFightNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &pf, nil
}

// UpdateProbableFight перезаписывает возможный бой.
func (s *Storage) UpdateProbableFight(ctx context.Context, pf models.ProbableFight) error {
	const op = "storage.UpdateProbableFight"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE probable_fights SET fighter1_uid = $1, fighter2_uid = $2, promotion_name = $3, weight_category = $4
		 WHERE id = $5`,
		pf.Fighter1UID, pf.Fighter2UID, pf.PromotionName, pf.WeightCategory, pf.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, apperr.ErrFightersNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrProbableFightNotFound)
}

// DeleteProbableFight удаляет возможный бой.
func (s *Storage) DeleteProbableFight(ctx context.Context, id int64) error {
	const op = "storage.DeleteProbableFight"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM probable_fights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrProbableFightNotFound)
}

// ListProbableFights возвращает возможные бои с карточками бойцов, новые первыми.
// limit <= 0 снимает ограничение.
func (s *Storage) ListProbableFights(ctx context.Context, limit int) ([]*models.ProbableFight, error) {
	const op = "storage.ListProbableFights"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT pf.id, pf.promotion_name, pf.weight_category, pf.created_at, ` + profileColumns + `, ` + profileColumnsOf("p2") + `
		FROM probable_fights pf
		JOIN profiles p ON p.account_uid = pf.fighter1_uid
		JOIN profiles p2 ON p2.account_uid = pf.fighter2_uid
		ORDER BY pf.created_at DESC, pf.id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.ProbableFight, 0)
	for rows.Next() {
		var (
			pf     models.ProbableFight
			r1, r2 profileRow
		)
		dest := append([]any{&pf.ID, &pf.PromotionName, &pf.WeightCategory, &pf.CreatedAt}, r1.dest()...)
		if err := rows.Scan(append(dest, r2.dest()...)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		f1, err := r1.profile()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		f2, err := r2.profile()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pf.Fighter1UID, pf.Fighter2UID = f1.AccountUID, f2.AccountUID
		pf.Fighter1 = f1.Public(f1.EffectiveStatus())
		pf.Fighter2 = f2.Public(f2.EffectiveStatus())
		res = append(res, &pf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
