package models

import "time"

// Post запись в ленте бойца.
type Post struct {
	ID             int64     `json:"id"`
	AuthorUID      string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Title          string    `json:"title"`
	Content        *string   `json:"content,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	VideoURL       *string   `json:"video_url,omitempty"`
	LikesCount     int       `json:"likes_count"`
	CommentsCount  int       `json:"comments_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PostRequest тело запроса на создание записи.
type PostRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL *string `json:"video_url,omitempty" validate:"omitempty,url"`
}

// Comment комментарий к записи.
type Comment struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"post_id"`
	AuthorUID      string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentRequest тело запроса на комментарий.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Page страница выборки.
type Page struct {
	Number int
	Size   int
}

// Offset смещение страницы.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
