package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const waitingColumns = `id, account_uid, username, full_name, city, height, weight, birth_date, created_at`

func scanWaiting(row scanner) (*models.WaitingVerification, error) {
	var (
		w         models.WaitingVerification
		height    sql.NullInt64
		weight    sql.NullInt64
		birthDate sql.NullTime
	)
	err := row.Scan(&w.ID, &w.AccountUID, &w.Username, &w.FullName, &w.City, &height, &weight, &birthDate, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.Height = intPtr(height)
	w.Weight = intPtr(weight)
	w.BirthDate = timePtr(birthDate)
	return &w, nil
}

// CreateWaitingVerification ставит аккаунт в очередь на верификацию.
// Повторная заявка того же аккаунта возвращает apperr.ErrAlreadyPending.
func (s *Storage) CreateWaitingVerification(ctx context.Context, w models.WaitingVerification) (*models.WaitingVerification, error) {
	const op = "storage.CreateWaitingVerification"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO waiting_verifications (account_uid, username, full_name, city, height, weight, birth_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	err := s.conn(ctx).QueryRowContext(ctx, query,
		w.AccountUID, w.Username, w.FullName, w.City, w.Height, w.Weight, w.BirthDate,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		if name, ok := isUniqueViolation(err); ok && name == "waiting_verifications_account_uid_key" {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrAlreadyPending)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &w, nil
}

// FindPendingByAccount возвращает заявку аккаунта, если она есть.
func (s *Storage) FindPendingByAccount(ctx context.Context, accountUID string) (*models.WaitingVerification, bool, error) {
	const op = "storage.FindPendingByAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, false, err
	}

	query := `SELECT ` + waitingColumns + ` FROM waiting_verifications WHERE account_uid = $1`
	w, err := scanWaiting(s.conn(ctx).QueryRowContext(ctx, query, accountUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return w, true, nil
}

// DeleteWaitingVerification удаляет заявку аккаунта и возвращает число удаленных строк.
func (s *Storage) DeleteWaitingVerification(ctx context.Context, accountUID string) (int64, error) {
	const op = "storage.DeleteWaitingVerification"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM waiting_verifications WHERE account_uid = $1`, accountUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListWaitingVerifications возвращает очередь заявок, старые первыми.
func (s *Storage) ListWaitingVerifications(ctx context.Context, limit, offset int) ([]*models.WaitingVerification, error) {
	const op = "storage.ListWaitingVerifications"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + waitingColumns + ` FROM waiting_verifications
			  ORDER BY created_at, id
			  LIMIT $1 OFFSET $2`
	rows, err := s.conn(ctx).QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.WaitingVerification, 0)
	for rows.Next() {
		w, err := scanWaiting(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
