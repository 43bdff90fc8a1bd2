// Package matchmaking подбирает бойцов по весу и ищет их по фильтрам.
package matchmaking

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// SearchPath путь полного поиска, на который ссылаются весовые корзины.
const SearchPath = "/api/v1/search"

// DefaultSampleSize размер выборки одной корзины.
const DefaultSampleSize = 4

// DefaultBuckets весовые корзины главной страницы.
func DefaultBuckets() []models.WeightBucket {
	lightMax, middleMax := 145, 170
	return []models.WeightBucket{
		{Name: "0-145", Min: 0, Max: &lightMax},
		{Name: "146-170", Min: 146, Max: &middleMax},
		{Name: "171+", Min: 171},
	}
}

// Repository методы хранилища для подбора и поиска.
type Repository interface {
	FindVerifiedByWeightRange(ctx context.Context, minWeight int, maxWeight *int) ([]*models.Profile, error)
	SearchProfiles(ctx context.Context, f models.SearchFilter, now time.Time) ([]*models.Profile, error)
}

// Service подбор и поиск бойцов.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewService создает Service со случайным источником.
func NewService(repo Repository, log *slog.Logger) *Service {
	return NewServiceWithRand(repo, log, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewServiceWithRand создает Service с заданным источником случайности.
func NewServiceWithRand(repo Repository, log *slog.Logger, rnd *rand.Rand) *Service {
	return &Service{repo: repo, log: log, now: time.Now, rnd: rnd}
}

// SampleVerifiedByWeight возвращает до k случайных верифицированных бойцов
// с весом в [minWeight, maxWeight]. nil maxWeight снимает верхнюю границу.
// Выборка без повторов, каждая комбинация равновероятна.
func (s *Service) SampleVerifiedByWeight(ctx context.Context, minWeight int, maxWeight *int, k int) ([]models.PublicProfile, error) {
	const op = "services.matchmaking.SampleVerifiedByWeight"
	if k <= 0 {
		return []models.PublicProfile{}, nil
	}
	eligible, err := s.repo.FindVerifiedByWeightRange(ctx, minWeight, maxWeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	picked := s.sample(eligible, k)
	res := make([]models.PublicProfile, 0, len(picked))
	for _, p := range picked {
		res = append(res, p.Public(p.EffectiveStatus()))
	}
	return res, nil
}

// sample частичная перетасовка Фишера-Йетса по копии входа.
func (s *Service) sample(in []*models.Profile, k int) []*models.Profile {
	n := len(in)
	if k > n {
		k = n
	}
	pool := make([]*models.Profile, n)
	copy(pool, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < k; i++ {
		j := i + s.rnd.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Buckets собирает выборки по всем корзинам со ссылками на полный поиск.
func (s *Service) Buckets(ctx context.Context, buckets []models.WeightBucket, k int) ([]models.BucketSample, error) {
	const op = "services.matchmaking.Buckets"
	res := make([]models.BucketSample, 0, len(buckets))
	for _, b := range buckets {
		fighters, err := s.SampleVerifiedByWeight(ctx, b.Min, b.Max, k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, models.BucketSample{
			Name:      b.Name,
			Min:       b.Min,
			Max:       b.Max,
			Fighters:  fighters,
			SearchURL: SearchURL(b),
		})
	}
	return res, nil
}

// SearchURL ссылка на поиск, повторяющий границы корзины.
func SearchURL(b models.WeightBucket) string {
	u := SearchPath + "?weight_min=" + strconv.Itoa(b.Min)
	if b.Max != nil {
		u += "&weight_max=" + strconv.Itoa(*b.Max)
	}
	return u
}

// Search ищет верифицированных бойцов по фильтру.
func (s *Service) Search(ctx context.Context, f models.SearchFilter) ([]models.PublicProfile, error) {
	const op = "services.matchmaking.Search"
	profiles, err := s.repo.SearchProfiles(ctx, f, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res := make([]models.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		res = append(res, p.Public(p.EffectiveStatus()))
	}
	s.log.Debug("search finished", slog.String("op", op), slog.Int("found", len(res)))
	return res, nil
}
