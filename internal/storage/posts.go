package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const postSelect = `SELECT po.id, po.author_uid, a.username, po.title, po.content, po.image_url, po.video_url,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = po.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = po.id),
		po.created_at, po.updated_at
	FROM posts po
	JOIN accounts a ON a.uid = po.author_uid`

func scanPost(row scanner) (*models.Post, error) {
	var (
		p        models.Post
		content  sql.NullString
		imageURL sql.NullString
		videoURL sql.NullString
	)
	err := row.Scan(&p.ID, &p.AuthorUID, &p.AuthorUsername, &p.Title, &content, &imageURL, &videoURL,
		&p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Content = strPtr(content)
	p.ImageURL = strPtr(imageURL)
	p.VideoURL = strPtr(videoURL)
	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	defer func() { _ = rows.Close() }()
	res := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// CreatePost сохраняет запись.
func (s *Storage) CreatePost(ctx context.Context, p models.Post) (int64, error) {
	const op = "storage.CreatePost"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO posts (author_uid, title, content, image_url, video_url)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.AuthorUID, p.Title, p.Content, p.ImageURL, p.VideoURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetPost возвращает запись по id.
func (s *Storage) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	const op = "storage.GetPost"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	p, err := scanPost(s.conn(ctx).QueryRowContext(ctx, postSelect+` WHERE po.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// DeletePost удаляет запись вместе с лайками и комментариями.
func (s *Storage) DeletePost(ctx context.Context, id int64) error {
	const op = "storage.DeletePost"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrPostNotFound)
}

// ListPostsByAuthor возвращает записи автора, новые первыми.
func (s *Storage) ListPostsByAuthor(ctx context.Context, authorUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListPostsByAuthor"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		postSelect+` WHERE po.author_uid = $1 ORDER BY po.created_at DESC, po.id DESC LIMIT $2 OFFSET $3`,
		authorUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListVerifiedPosts возвращает страницу записей верифицированных авторов и их общее число.
func (s *Storage) ListVerifiedPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	const op = "storage.ListVerifiedPosts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}

	var total int
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts po JOIN accounts a ON a.uid = po.author_uid WHERE a.is_verified`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		postSelect+` WHERE a.is_verified ORDER BY po.created_at DESC, po.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	res, err := scanPosts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return res, total, nil
}

// AddLike ставит лайк записи. Повторный лайк возвращает apperr.ErrAlreadyLiked.
func (s *Storage) AddLike(ctx context.Context, accountUID string, postID int64) error {
	const op = "storage.AddLike"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	_, err := s.conn(ctx).ExecContext(ctx,
		`INSERT INTO likes (account_uid, post_id) VALUES ($1, $2)`, accountUID, postID)
	if err != nil {
		if name, ok := isUniqueViolation(err); ok && name == "likes_account_post_key" {
			return fmt.Errorf("%s: %w", op, apperr.ErrAlreadyLiked)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, apperr.ErrPostNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteLike снимает лайк.
func (s *Storage) DeleteLike(ctx context.Context, accountUID string, postID int64) error {
	const op = "storage.DeleteLike"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`DELETE FROM likes WHERE account_uid = $1 AND post_id = $2`, accountUID, postID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrLikeNotFound)
}

// AddComment добавляет комментарий к записи.
func (s *Storage) AddComment(ctx context.Context, c models.Comment) (*models.Comment, error) {
	const op = "storage.AddComment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO comments (post_id, author_uid, text) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.PostID, c.AuthorUID, c.Text,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// ListComments возвращает комментарии записи в порядке добавления.
func (s *Storage) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	const op = "storage.ListComments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_uid, a.username, c.text, c.created_at
		 FROM comments c
		 JOIN accounts a ON a.uid = c.author_uid
		 WHERE c.post_id = $1
		 ORDER BY c.created_at, c.id`, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorUID, &c.AuthorUsername, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
