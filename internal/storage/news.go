package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

func scanNews(row scanner) (*models.News, error) {
	var (
		n     models.News
		photo sql.NullString
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &photo, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.PhotoURL = strPtr(photo)
	return &n, nil
}

// CreateNews сохраняет новость.
func (s *Storage) CreateNews(ctx context.Context, n models.News) (*models.News, error) {
	const op = "storage.CreateNews"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO news (title, content, photo_url) VALUES ($1, $2, $3) RETURNING id, created_at`,
		n.Title, n.Content, n.PhotoURL,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}

// GetNews возвращает новость по id.
func (s *Storage) GetNews(ctx context.Context, id int64) (*models.News, error) {
	const op = "storage.GetNews"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	n, err := scanNews(s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, title, content, photo_url, created_at FROM news WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNewsNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdateNews перезаписывает новость.
func (s *Storage) UpdateNews(ctx context.Context, n models.News) error {
	const op = "storage.UpdateNews"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE news SET title = $1, content = $2, photo_url = $3 WHERE id = $4`,
		n.Title, n.Content, n.PhotoURL, n.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrNewsNotFound)
}

// DeleteNews удаляет новость.
func (s *Storage) DeleteNews(ctx context.Context, id int64) error {
	const op = "storage.DeleteNews"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrNewsNotFound)
}

// ListNews возвращает все новости, новые первыми.
func (s *Storage) ListNews(ctx context.Context) ([]*models.News, error) {
	const op = "storage.ListNews"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT id, title, content, photo_url, created_at FROM news ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
