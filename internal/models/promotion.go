package models

import "time"

// PromotionProfile карточка промоушена, доступна аккаунтам с флагом is_promotion.
type PromotionProfile struct {
	AccountUID    string     `json:"-"`
	Username      string     `json:"username"`
	City          string     `json:"city"`
	Creator       string     `json:"creator"`
	DateOfCreate  *time.Time `json:"date_of_create,omitempty"`
	Description   string     `json:"description"`
	YoutubeLink   string     `json:"youtube_link"`
	InstagramLink string     `json:"instagram_link"`
	LogoURL       string     `json:"logo_url"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PromotionRequest тело запроса на сохранение карточки промоушена.
type PromotionRequest struct {
	City          string `json:"city" validate:"max=100"`
	Creator       string `json:"creator" validate:"max=255"`
	DateOfCreate  string `json:"date_of_create"`
	Description   string `json:"description"`
	YoutubeLink   string `json:"youtube_link" validate:"omitempty,url"`
	InstagramLink string `json:"instagram_link" validate:"omitempty,url"`
	LogoURL       string `json:"logo_url" validate:"omitempty,url"`
}
