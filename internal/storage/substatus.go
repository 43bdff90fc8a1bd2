package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// AddSubStatus добавляет запись в журнал саб-статусов профиля.
func (s *Storage) AddSubStatus(ctx context.Context, profileUID, message string) (*models.SubStatus, error) {
	const op = "storage.AddSubStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	st := models.SubStatus{ProfileUID: profileUID, Message: message}
	query := `INSERT INTO sub_statuses (profile_uid, message) VALUES ($1, $2) RETURNING id, created_at`
	err := s.conn(ctx).QueryRowContext(ctx, query, profileUID, message).Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// GetSubStatus возвращает запись журнала по id.
func (s *Storage) GetSubStatus(ctx context.Context, id int64) (*models.SubStatus, error) {
	const op = "storage.GetSubStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var st models.SubStatus
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, profile_uid, message, created_at FROM sub_statuses WHERE id = $1`, id,
	).Scan(&st.ID, &st.ProfileUID, &st.Message, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrSubStatusNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// LatestSubStatus возвращает самую свежую запись профиля. При равном времени
// побеждает запись с большим id.
func (s *Storage) LatestSubStatus(ctx context.Context, profileUID string) (*models.SubStatus, bool, error) {
	const op = "storage.LatestSubStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, false, err
	}

	var st models.SubStatus
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, profile_uid, message, created_at FROM sub_statuses
		 WHERE profile_uid = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, profileUID,
	).Scan(&st.ID, &st.ProfileUID, &st.Message, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &st, true, nil
}

// ListSubStatuses возвращает журнал профиля, новые записи первыми.
func (s *Storage) ListSubStatuses(ctx context.Context, profileUID string) ([]*models.SubStatus, error) {
	const op = "storage.ListSubStatuses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT id, profile_uid, message, created_at FROM sub_statuses
		 WHERE profile_uid = $1
		 ORDER BY created_at DESC, id DESC`, profileUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.SubStatus, 0)
	for rows.Next() {
		var st models.SubStatus
		if err := rows.Scan(&st.ID, &st.ProfileUID, &st.Message, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
