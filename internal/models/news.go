package models

import "time"

// News новость платформы.
type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsRequest тело запроса на создание новости.
type NewsRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// NewsUpdate частичное изменение новости.
type NewsUpdate struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content  *string `json:"content,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
