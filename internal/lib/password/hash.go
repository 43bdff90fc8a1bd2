// Package password хеширует и проверяет пароли пользователей.
package password

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
)

// MinLength минимальная длина пароля.
const MinLength = 8

var common = map[string]struct{}{
	"password": {}, "password1": {}, "qwerty123": {}, "12345678": {},
	"123456789": {}, "11111111": {}, "iloveyou": {}, "qwertyuiop": {},
}

// GetHash возвращает bcrypt-хеш пароля.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хеш с введенным паролем.
// Возвращает nil, если пароль соответствует хешу.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Validate проверяет пароль на длину, на то, что он не состоит из одних цифр,
// не входит в список распространенных и не совпадает с username.
func Validate(password, username string) error {
	if len([]rune(password)) < MinLength {
		return apperr.Validation(fmt.Sprintf("password must contain at least %d characters", MinLength))
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return apperr.Validation("password is entirely numeric")
	}
	if _, ok := common[strings.ToLower(password)]; ok {
		return apperr.ErrWeakPassword
	}
	if username != "" && strings.EqualFold(password, username) {
		return apperr.Validation("password is too similar to the username")
	}
	return nil
}
