package models

import "time"

// FightResult исход боя.
type FightResult string

const (
	ResultWin  FightResult = "win"
	ResultLoss FightResult = "loss"
	ResultDraw FightResult = "draw"
)

// FightRecord запись о проведенном бое. Видна публично после одобрения администратором.
type FightRecord struct {
	ID         int64       `json:"id"`
	ProfileUID string      `json:"-"`
	Username   string      `json:"username"`
	Opponent   string      `json:"opponent"`
	Event      string      `json:"event"`
	Result     FightResult `json:"result"`
	FightDate  time.Time   `json:"fight_date"`
	VideoURL   *string     `json:"video_url,omitempty"`
	IsApproved bool        `json:"is_approved"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FightRecordRequest тело запроса на добавление боя. FightDate в формате 2006-01-02.
type FightRecordRequest struct {
	Opponent  string  `json:"opponent" validate:"required,max=255"`
	Event     string  `json:"event" validate:"required,max=255"`
	Result    string  `json:"result" validate:"required,oneof=win loss draw"`
	FightDate string  `json:"fight_date" validate:"required"`
	VideoURL  *string `json:"video_url,omitempty" validate:"omitempty,url"`
}

// ProbableFight возможный бой между двумя верифицированными бойцами.
type ProbableFight struct {
	ID             int64         `json:"id"`
	Fighter1UID    string        `json:"-"`
	Fighter2UID    string        `json:"-"`
	Fighter1       PublicProfile `json:"fighter1"`
	Fighter2       PublicProfile `json:"fighter2"`
	PromotionName  string        `json:"promotion_name"`
	WeightCategory int           `json:"weight_category"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ProbableFightRequest тело запроса на создание возможного боя.
type ProbableFightRequest struct {
	Fighter1Username string `json:"fighter1_username" validate:"required"`
	Fighter2Username string `json:"fighter2_username" validate:"required"`
	PromotionName    string `json:"promotion_name" validate:"required,max=255"`
	WeightCategory   int    `json:"weight_category" validate:"required,gt=0"`
}

// ProbableFightUpdate частичное изменение. Не переданные бойцы остаются прежними.
type ProbableFightUpdate struct {
	Fighter1Username *string `json:"fighter1_username,omitempty"`
	Fighter2Username *string `json:"fighter2_username,omitempty"`
	PromotionName    *string `json:"promotion_name,omitempty" validate:"omitempty,max=255"`
	WeightCategory   *int    `json:"weight_category,omitempty" validate:"omitempty,gt=0"`
}
