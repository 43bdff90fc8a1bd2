package models

import "time"

// WaitingVerification заявка на верификацию. Хранит снимок профиля на момент подачи.
// На один аккаунт приходится не больше одной заявки.
type WaitingVerification struct {
	ID         int64      `json:"id"`
	AccountUID string     `json:"-"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name"`
	City       string     `json:"city"`
	Height     *int       `json:"height,omitempty"`
	Weight     *int       `json:"weight,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Decision решение администратора по заявке.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// VerificationEvent сообщение о решении по заявке, уходит в RabbitMQ.
type VerificationEvent struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Decision Decision  `json:"decision"`
	At       time.Time `json:"at"`
}
