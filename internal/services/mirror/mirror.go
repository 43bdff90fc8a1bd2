// Package mirror синхронизирует поля username, is_verified и is_promotion
// между аккаунтом и профилем.
//
// Сервисы вызывают Mediator сразу после сохранения аккаунта или профиля, в той же
// транзакции. Пишутся только отличающиеся поля, поэтому повторный вызов ничего не меняет.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища, нужные медиатору.
type Repository interface {
	GetAccountByUID(ctx context.Context, uid string) (*models.Account, error)
	GetProfile(ctx context.Context, accountUID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p models.Profile) (bool, error)
	UpdateProfileMirror(ctx context.Context, accountUID string, m models.Mirror, fields []models.MirrorField) error
	UpdateAccountMirror(ctx context.Context, uid string, m models.Mirror, fields []models.MirrorField) error
}

// Mediator переносит зеркалируемые поля между аккаунтом и профилем.
type Mediator struct {
	repo Repository
	log  *slog.Logger
}

// New создает Mediator.
func New(repo Repository, log *slog.Logger) *Mediator {
	return &Mediator{repo: repo, log: log}
}

// Diff возвращает поля, в которых dst отличается от src.
func Diff(src, dst models.Mirror) []models.MirrorField {
	var fields []models.MirrorField
	for _, f := range models.MirrorFields {
		switch f {
		case models.FieldIsVerified:
			if src.IsVerified != dst.IsVerified {
				fields = append(fields, f)
			}
		case models.FieldIsPromotion:
			if src.IsPromotion != dst.IsPromotion {
				fields = append(fields, f)
			}
		case models.FieldUsername:
			if src.Username != dst.Username {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// OnAccountCreated создает профиль нового аккаунта с копией зеркалируемых полей.
// Если профиль уже есть, ничего не делает.
func (m *Mediator) OnAccountCreated(ctx context.Context, acc *models.Account) error {
	const op = "services.mirror.OnAccountCreated"
	mir := acc.Mirror()
	_, err := m.repo.CreateProfile(ctx, models.Profile{
		AccountUID:  acc.UID,
		Username:    mir.Username,
		IsVerified:  mir.IsVerified,
		IsPromotion: mir.IsPromotion,
		Status:      models.StatusFree,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AfterAccountSaved переносит поля аккаунта в профиль и возвращает записанные поля.
// Отсутствующий профиль создается.
func (m *Mediator) AfterAccountSaved(ctx context.Context, acc *models.Account) ([]models.MirrorField, error) {
	const op = "services.mirror.AfterAccountSaved"
	log := m.log.With(slog.String("op", op), slog.String("uid", acc.UID))

	p, err := m.repo.GetProfile(ctx, acc.UID)
	if errors.Is(err, apperr.ErrProfileNotFound) {
		log.Warn("profile is missing, creating")
		if err := m.OnAccountCreated(ctx, acc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return append([]models.MirrorField(nil), models.MirrorFields...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields := Diff(acc.Mirror(), p.Mirror())
	if len(fields) == 0 {
		return nil, nil
	}
	if err := m.repo.UpdateProfileMirror(ctx, acc.UID, acc.Mirror(), fields); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("profile synced", slog.Any("fields", fields))
	return fields, nil
}

// AfterProfileSaved переносит поля профиля в аккаунт и возвращает записанные поля.
func (m *Mediator) AfterProfileSaved(ctx context.Context, p *models.Profile) ([]models.MirrorField, error) {
	const op = "services.mirror.AfterProfileSaved"

	acc, err := m.repo.GetAccountByUID(ctx, p.AccountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields := Diff(p.Mirror(), acc.Mirror())
	if len(fields) == 0 {
		return nil, nil
	}
	if err := m.repo.UpdateAccountMirror(ctx, acc.UID, p.Mirror(), fields); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.log.Debug("account synced", slog.String("op", op), slog.String("uid", acc.UID), slog.Any("fields", fields))
	return fields, nil
}
