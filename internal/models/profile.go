package models

import (
	"strings"
	"time"
)

// Status статус готовности бойца к бою.
type Status string

const (
	StatusFree         Status = "Free"
	StatusReadyToFight Status = "ReadyToFight"
	StatusInjury       Status = "Injury"
	StatusReadyIn30    Status = "ReadyIn30"
	StatusReadyIn60    Status = "ReadyIn60"
	StatusReadyIn90    Status = "ReadyIn90"
	StatusHasContract  Status = "HasContract"
)

// Statuses допустимые значения Status.
var Statuses = []Status{
	StatusFree, StatusReadyToFight, StatusInjury,
	StatusReadyIn30, StatusReadyIn60, StatusReadyIn90, StatusHasContract,
}

// ParseStatus разбирает статус без учета регистра.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Profile публичная карточка бойца. Создается вместе с аккаунтом и удаляется вместе с ним.
type Profile struct {
	AccountUID     string     `json:"-"`
	Username       string     `json:"username"`
	FullName       string     `json:"full_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Weight         *int       `json:"weight,omitempty"`
	Height         *int       `json:"height,omitempty"`
	Sport          string     `json:"sport"`
	City           string     `json:"city"`
	SportTime      string     `json:"sport_time"`
	ProfilePicture string     `json:"profile_picture"`
	Description    string     `json:"description"`
	Rank           string     `json:"rank"`
	RankFile       string     `json:"rank_file"`
	VideoLinks     []string   `json:"video_links"`
	InstagramLink  string     `json:"instagram_link"`
	Status         Status     `json:"status"`
	DisplayStatus  *string    `json:"display_status,omitempty"`
	IsVerified     bool       `json:"is_verified"`
	IsPromotion    bool       `json:"is_promotion"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Mirror возвращает зеркалируемые поля профиля.
func (p *Profile) Mirror() Mirror {
	return Mirror{Username: p.Username, IsVerified: p.IsVerified, IsPromotion: p.IsPromotion}
}

// Apply записывает зеркалируемые поля в профиль.
func (p *Profile) Apply(m Mirror, fields []MirrorField) {
	for _, f := range fields {
		switch f {
		case FieldUsername:
			p.Username = m.Username
		case FieldIsVerified:
			p.IsVerified = m.IsVerified
		case FieldIsPromotion:
			p.IsPromotion = m.IsPromotion
		}
	}
}

// EffectiveStatus возвращает последний саб-статус из кэша профиля,
// а если его нет, статус из перечисления.
func (p *Profile) EffectiveStatus() string {
	if p.DisplayStatus != nil {
		return *p.DisplayStatus
	}
	return string(p.Status)
}

// Age возвращает возраст как разницу календарных лет, без учета дня рождения.
func (p *Profile) Age(now time.Time) (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	return now.Year() - p.BirthDate.Year(), true
}

// PublicProfile профиль в том виде, в котором его видят другие пользователи.
// Status здесь уже эффективный: последний саб-статус или статус из перечисления.
type PublicProfile struct {
	Username       string     `json:"username"`
	FullName       string     `json:"full_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Weight         *int       `json:"weight,omitempty"`
	Height         *int       `json:"height,omitempty"`
	Sport          string     `json:"sport"`
	City           string     `json:"city"`
	SportTime      string     `json:"sport_time"`
	ProfilePicture string     `json:"profile_picture"`
	Description    string     `json:"description"`
	Rank           string     `json:"rank"`
	VideoLinks     []string   `json:"video_links"`
	InstagramLink  string     `json:"instagram_link"`
	Status         string     `json:"status"`
	IsVerified     bool       `json:"is_verified"`
}

// Public собирает публичную проекцию с эффективным статусом.
func (p *Profile) Public(effectiveStatus string) PublicProfile {
	links := p.VideoLinks
	if links == nil {
		links = []string{}
	}
	return PublicProfile{
		Username:       p.Username,
		FullName:       p.FullName,
		BirthDate:      p.BirthDate,
		Weight:         p.Weight,
		Height:         p.Height,
		Sport:          p.Sport,
		City:           p.City,
		SportTime:      p.SportTime,
		ProfilePicture: p.ProfilePicture,
		Description:    p.Description,
		Rank:           p.Rank,
		VideoLinks:     links,
		InstagramLink:  p.InstagramLink,
		Status:         effectiveStatus,
		IsVerified:     p.IsVerified,
	}
}

// ProfileUpdate частичное изменение профиля владельцем.
// BirthDate приходит строкой в формате 2006-01-02.
type ProfileUpdate struct {
	Username       *string   `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
	FullName       *string   `json:"full_name,omitempty" validate:"omitempty,max=255"`
	BirthDate      *string   `json:"birth_date,omitempty"`
	Weight         *int      `json:"weight,omitempty" validate:"omitempty,gt=0,lt=1000"`
	Height         *int      `json:"height,omitempty" validate:"omitempty,gt=0,lt=300"`
	Sport          *string   `json:"sport,omitempty" validate:"omitempty,max=100"`
	City           *string   `json:"city,omitempty" validate:"omitempty,max=100"`
	SportTime      *string   `json:"sport_time,omitempty" validate:"omitempty,max=100"`
	ProfilePicture *string   `json:"profile_picture,omitempty" validate:"omitempty,url"`
	Description    *string   `json:"description,omitempty"`
	Rank           *string   `json:"rank,omitempty" validate:"omitempty,max=100"`
	RankFile       *string   `json:"rank_file,omitempty" validate:"omitempty,url"`
	VideoLinks     *[]string `json:"video_links,omitempty"`
	InstagramLink  *string   `json:"instagram_link,omitempty" validate:"omitempty,url"`
	Status         *string   `json:"status,omitempty"`
}
