// Package news публикация новостей платформы. Список новостей кэшируется в Redis.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища новостей.
type Repository interface {
	CreateNews(ctx context.Context, n models.News) (*models.News, error)
	GetNews(ctx context.Context, id int64) (*models.News, error)
	UpdateNews(ctx context.Context, n models.News) error
	DeleteNews(ctx context.Context, id int64) error
	ListNews(ctx context.Context) ([]*models.News, error)
}

// Cache кэш новостей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Service бизнес-логика новостей.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// List возвращает все новости, новые первыми.
func (s *Service) List(ctx context.Context) ([]*models.News, error) {
	const op = "services.news.List"

	var cached []*models.News
	found, err := s.cache.Get(ctx, cache.NewsListKey, &cached)
	if err != nil {
		s.log.Warn("failed to read news from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	res, err := s.repo.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, cache.NewsListKey, res, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache news", sl.Err(err))
	}
	return res, nil
}

// Get возвращает новость по id.
func (s *Service) Get(ctx context.Context, id int64) (*models.News, error) {
	const op = "services.news.Get"
	key := cache.NewsKey(id)

	var cached models.News
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read news from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	n, err := s.repo.GetNews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, n, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache news", slog.String("key", key), sl.Err(err))
	}
	return n, nil
}

// Create публикует новость.
func (s *Service) Create(ctx context.Context, actor *models.Account, req models.NewsRequest) (*models.News, error) {
	const op = "services.news.Create"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}
	n, err := s.repo.CreateNews(ctx, models.News{Title: req.Title, Content: req.Content, PhotoURL: req.PhotoURL})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.NewsListKey)
	s.log.Info("news created", slog.String("op", op), slog.Int64("id", n.ID))
	return n, nil
}

// Update меняет новость.
func (s *Service) Update(ctx context.Context, actor *models.Account, id int64, upd models.NewsUpdate) (*models.News, error) {
	const op = "services.news.Update"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}
	n, err := s.repo.GetNews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.PhotoURL != nil {
		n.PhotoURL = upd.PhotoURL
	}
	if err := s.repo.UpdateNews(ctx, *n); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.NewsListKey, cache.NewsKey(id))
	return n, nil
}

// Delete удаляет новость.
func (s *Service) Delete(ctx context.Context, actor *models.Account, id int64) error {
	const op = "services.news.Delete"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.DeleteNews(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.NewsListKey, cache.NewsKey(id))
	return nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate news cache", slog.Any("keys", keys), sl.Err(err))
	}
}
