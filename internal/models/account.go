// Package models содержит доменные структуры платформы: аккаунты, профили бойцов,
// заявки на верификацию, саб-статусы, избранное, ленту, бои и новости,
// а также структуры для приема данных из JSON-запросов.
package models

import "time"

// Account учетная запись пользователя. Отвечает за вход в систему и флаги доступа.
type Account struct {
	UID          string    `json:"uid"`
	Username     string    `json:"username"`
	PhoneNumber  string    `json:"phone_number"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"is_verified"`
	IsPromotion  bool      `json:"is_promotion"`
	IsStaff      bool      `json:"is_staff"`
	Creator      *string   `json:"creator,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Mirror возвращает зеркалируемые поля аккаунта.
func (a *Account) Mirror() Mirror {
	return Mirror{Username: a.Username, IsVerified: a.IsVerified, IsPromotion: a.IsPromotion}
}

// Apply записывает зеркалируемые поля в аккаунт.
func (a *Account) Apply(m Mirror, fields []MirrorField) {
	for _, f := range fields {
		switch f {
		case FieldUsername:
			a.Username = m.Username
		case FieldIsVerified:
			a.IsVerified = m.IsVerified
		case FieldIsPromotion:
			a.IsPromotion = m.IsPromotion
		}
	}
}

// RegisterRequest тело запроса регистрации.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=150"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=5,max=20"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Password    string  `json:"password" validate:"required"`
	Password2   string  `json:"password2" validate:"required"`
}

// LoginRequest тело запроса входа. Login: номер телефона или username.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountUpdate изменения аккаунта от самого пользователя.
type AccountUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// AccountFlags изменения флагов аккаунта администратором.
type AccountFlags struct {
	IsPromotion *bool `json:"is_promotion,omitempty"`
	IsStaff     *bool `json:"is_staff,omitempty"`
}
