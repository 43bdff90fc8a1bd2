package models

// SearchFilter параметры поиска бойцов. Нулевые указатели означают отсутствие ограничения.
type SearchFilter struct {
	City      string
	FullName  string
	Sport     string
	Status    string
	WeightMin *int
	WeightMax *int
	HeightMin *int
	HeightMax *int
	AgeMin    *int
	AgeMax    *int
}

// WeightBucket весовая корзина главной страницы. Max == nil означает "и выше".
type WeightBucket struct {
	Name string
	Min  int
	Max  *int
}

// BucketSample случайная выборка бойцов одной корзины.
type BucketSample struct {
	Name      string          `json:"name"`
	Min       int             `json:"weight_min"`
	Max       *int            `json:"weight_max,omitempty"`
	Fighters  []PublicProfile `json:"fighters"`
	SearchURL string          `json:"search_url"`
}

// Pagination блок пагинации ленты.
type Pagination struct {
	Count       int     `json:"count"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
}

// HomeFeed данные главной страницы.
type HomeFeed struct {
	Posts          []*Post          `json:"posts"`
	Pagination     Pagination       `json:"pagination"`
	News           []*News          `json:"news"`
	Buckets        []BucketSample   `json:"weight_buckets"`
	ProbableFights []*ProbableFight `json:"probable_fights"`
}
