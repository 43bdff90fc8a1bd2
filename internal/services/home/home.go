// Package home собирает данные главной страницы.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// HomePath путь главной страницы для ссылок пагинации.
const HomePath = "/api/v1/home"

// PostRepository записи верифицированных авторов.
type PostRepository interface {
	ListVerifiedPosts(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
}

// FightRepository последние возможные бои.
type FightRepository interface {
	ListProbableFights(ctx context.Context, limit int) ([]*models.ProbableFight, error)
}

// NewsLister список новостей.
type NewsLister interface {
	List(ctx context.Context) ([]*models.News, error)
}

// Matchmaker выборки бойцов по весовым корзинам.
type Matchmaker interface {
	Buckets(ctx context.Context, buckets []models.WeightBucket, k int) ([]models.BucketSample, error)
}

// Service собирает HomeFeed.
type Service struct {
	posts   PostRepository
	fights  FightRepository
	news    NewsLister
	matcher Matchmaker
	buckets []models.WeightBucket
	cfg     config.Feed
	log     *slog.Logger
}

// NewService создает Service.
func NewService(posts PostRepository, fights FightRepository, news NewsLister, matcher Matchmaker,
	buckets []models.WeightBucket, cfg config.Feed, log *slog.Logger) *Service {
	return &Service{
		posts:   posts,
		fights:  fights,
		news:    news,
		matcher: matcher,
		buckets: buckets,
		cfg:     cfg,
		log:     log,
	}
}

// Feed возвращает страницу page главной ленты. Нумерация страниц с 1.
func (s *Service) Feed(ctx context.Context, page int) (*models.HomeFeed, error) {
	const op = "services.home.Feed"
	if page < 1 {
		return nil, apperr.ErrInvalidPage
	}
	size := s.cfg.PageSize

	posts, total, err := s.posts.ListVerifiedPosts(ctx, size, models.Page{Number: page, Size: size}.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pagination, err := Paginate(HomePath, total, page, size)
	if err != nil {
		return nil, err
	}

	news, err := s.news.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	buckets, err := s.matcher.Buckets(ctx, s.buckets, s.cfg.BucketSample)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fights, err := s.fights.ListProbableFights(ctx, s.cfg.ProbableFights)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.HomeFeed{
		Posts:          posts,
		Pagination:     pagination,
		News:           news,
		Buckets:        buckets,
		ProbableFights: fights,
	}, nil
}

// Paginate строит блок пагинации. Пустая выборка состоит из одной пустой страницы.
// Страница за пределами выборки возвращает apperr.ErrInvalidPage.
func Paginate(path string, count, page, size int) (models.Pagination, error) {
	totalPages := 1
	if count > 0 && size > 0 {
		totalPages = (count + size - 1) / size
	}
	if page < 1 || page > totalPages {
		return models.Pagination{}, apperr.ErrInvalidPage
	}

	p := models.Pagination{Count: count, CurrentPage: page, TotalPages: totalPages}
	if page < totalPages {
		next := path + "?page=" + strconv.Itoa(page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := path
		if page > 2 {
			prev += "?page=" + strconv.Itoa(page-1)
		}
		p.Previous = &prev
	}
	return p, nil
}
