// Package access проверяет права аккаунта на действие.
package access

import (
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Role роль аккаунта.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RolePromotion Role = "promotion"
	RoleVerified  Role = "verified"
)

// RoleOf возвращает основную роль аккаунта, которая кладется в JWT.
func RoleOf(acc *models.Account) Role {
	if acc != nil && acc.IsStaff {
		return RoleAdmin
	}
	return RoleUser
}

// Has сообщает, обладает ли аккаунт ролью.
func Has(acc *models.Account, role Role) bool {
	if acc == nil {
		return false
	}
	switch role {
	case RoleUser:
		return true
	case RoleAdmin:
		return acc.IsStaff
	case RolePromotion:
		return acc.IsPromotion
	case RoleVerified:
		return acc.IsVerified
	}
	return false
}

// RequireRole возвращает ошибку вида ErrPermissionDenied, если у аккаунта нет роли.
func RequireRole(acc *models.Account, role Role) error {
	if Has(acc, role) {
		return nil
	}
	switch role {
	case RoleAdmin:
		return apperr.ErrNotAdmin
	case RolePromotion:
		return apperr.ErrNotPromotion
	case RoleVerified:
		return apperr.ErrNotVerified
	}
	return apperr.New(apperr.ErrPermissionDenied, "permission denied")
}
