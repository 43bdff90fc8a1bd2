// Package social записи бойцов, лайки и комментарии.
package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища ленты.
type Repository interface {
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	CreatePost(ctx context.Context, p models.Post) (int64, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	ListPostsByAuthor(ctx context.Context, authorUID string, limit, offset int) ([]*models.Post, error)
	AddLike(ctx context.Context, accountUID string, postID int64) error
	DeleteLike(ctx context.Context, accountUID string, postID int64) error
	AddComment(ctx context.Context, c models.Comment) (*models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// Service бизнес-логика ленты.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreatePost публикует запись от имени uid.
func (s *Service) CreatePost(ctx context.Context, uid string, req models.PostRequest) (*models.Post, error) {
	const op = "services.social.CreatePost"
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	id, err := s.repo.CreatePost(ctx, models.Post{
		AuthorUID: uid,
		Title:     title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		VideoURL:  req.VideoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("post created", slog.String("op", op), slog.Int64("id", id))
	return p, nil
}

// ListByAuthor возвращает записи пользователя username.
func (s *Service) ListByAuthor(ctx context.Context, username string, page models.Page) ([]*models.Post, error) {
	const op = "services.social.ListByAuthor"
	acc, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListPostsByAuthor(ctx, acc.UID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// DeletePost удаляет собственную запись uid.
func (s *Service) DeletePost(ctx context.Context, uid string, id int64) error {
	const op = "services.social.DeletePost"
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.AuthorUID != uid {
		return apperr.ErrNotOwner
	}
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Like ставит лайк. Повторный лайк того же пользователя отклоняется.
func (s *Service) Like(ctx context.Context, uid string, postID int64) error {
	const op = "services.social.Like"
	if err := s.repo.AddLike(ctx, uid, postID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Unlike снимает лайк.
func (s *Service) Unlike(ctx context.Context, uid string, postID int64) error {
	const op = "services.social.Unlike"
	if err := s.repo.DeleteLike(ctx, uid, postID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Comment добавляет комментарий uid к записи.
func (s *Service) Comment(ctx context.Context, uid string, postID int64, text string) (*models.Comment, error) {
	const op = "services.social.Comment"
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text must not be empty")
	}
	c, err := s.repo.AddComment(ctx, models.Comment{PostID: postID, AuthorUID: uid, Text: text})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListComments возвращает комментарии существующей записи.
func (s *Service) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	const op = "services.social.ListComments"
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
