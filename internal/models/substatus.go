package models

import "time"

// SubStatus запись в журнале статусов профиля. Записи только добавляются.
type SubStatus struct {
	ID         int64     `json:"id"`
	ProfileUID string    `json:"-"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubStatusRequest тело запроса на публикацию или правку саб-статуса.
type SubStatusRequest struct {
	Message string `json:"message" validate:"required,max=255"`
}
