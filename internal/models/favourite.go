package models

import "time"

// Favourite профиль, отмеченный пользователем.
type Favourite struct {
	ID         int64         `json:"id"`
	AccountUID string        `json:"-"`
	ProfileUID string        `json:"-"`
	Profile    PublicProfile `json:"profile"`
	CreatedAt  time.Time     `json:"created_at"`
}

// FavouriteRequest тело запроса на добавление в избранное.
type FavouriteRequest struct {
	Username string `json:"username" validate:"required"`
}
