// Package apperr описывает доменные ошибки сервиса.
//
// Каждая ошибка относится к одному из базовых видов (ErrValidation, ErrNotFound,
// ErrPermissionDenied, ErrAlreadyInState, ErrUnauthorized). HTTP-слой выбирает
// код ответа по виду через errors.Is, а текст ответа берет из самой ошибки.
package apperr

import "errors"

// Базовые виды ошибок.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyInState   = errors.New("already in state")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Error доменная ошибка с сообщением для клиента.
type Error struct {
	kind error
	msg  string
}

// New создает доменную ошибку вида kind.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Validation создает ошибку валидации с произвольным сообщением.
func Validation(msg string) *Error {
	return New(ErrValidation, msg)
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind возвращает базовый вид ошибки.
func (e *Error) Kind() error { return e.kind }

// Message возвращает текст доменной ошибки из цепочки err.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}
	return "", false
}

// Аккаунты и профили.
var (
	ErrAccountNotFound    = New(ErrNotFound, "account not found")
	ErrProfileNotFound    = New(ErrNotFound, "profile not found")
	ErrUsernameTaken      = New(ErrAlreadyInState, "username is already taken")
	ErrPhoneTaken         = New(ErrAlreadyInState, "phone number is already registered")
	ErrPasswordMismatch   = New(ErrValidation, "passwords do not match")
	ErrWeakPassword       = New(ErrValidation, "password is too weak")
	ErrInvalidStatus      = New(ErrValidation, "unknown status")
	ErrInvalidCredentials = New(ErrUnauthorized, "invalid credentials")
	ErrNotAdmin           = New(ErrPermissionDenied, "admin rights required")
	ErrNotPromotion       = New(ErrPermissionDenied, "promotion account required")
	ErrNotVerified        = New(ErrPermissionDenied, "user is not verified")
)

// Верификация.
var (
	ErrAlreadyVerified = New(ErrAlreadyInState, "account is already verified")
	ErrAlreadyPending  = New(ErrAlreadyInState, "verification request is already pending")
	ErrNotFoundInQueue = New(ErrNotFound, "user is not in the verification waiting list")
)

// Саб-статусы и избранное.
var (
	ErrSubStatusNotFound = New(ErrNotFound, "sub-status not found")
	ErrSubStatusLength   = New(ErrValidation, "message must be between 1 and 255 characters")
	ErrNotOwner          = New(ErrPermissionDenied, "entry belongs to another user")
	ErrAlreadyFavourite  = New(ErrAlreadyInState, "profile is already in favourites")
	ErrFavouriteNotFound = New(ErrNotFound, "profile is not in favourites")
	ErrFavouriteSelf     = New(ErrValidation, "cannot add yourself to favourites")
)

// Лента, бои, новости, промоушены.
var (
	ErrPostNotFound          = New(ErrNotFound, "post not found")
	ErrAlreadyLiked          = New(ErrAlreadyInState, "post is already liked")
	ErrLikeNotFound          = New(ErrNotFound, "like not found")
	ErrFightRecordNotFound   = New(ErrNotFound, "fight record not found")
	ErrProbableFightNotFound = New(ErrNotFound, "probable fight not found")
	ErrFightersNotFound      = New(ErrValidation, "one or both fighters not found")
	ErrFightersNotVerified   = New(ErrValidation, "both fighters must be verified")
	ErrSameFighter           = New(ErrValidation, "a fighter cannot fight themselves")
	ErrNewsNotFound          = New(ErrNotFound, "news not found")
	ErrPromotionNotFound     = New(ErrNotFound, "promotion profile not found")
	ErrInvalidPage           = New(ErrNotFound, "invalid page")
)
