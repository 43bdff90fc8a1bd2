// Package account отвечает за регистрацию, вход и изменение аккаунтов.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/fighters-hub/internal/cache"
	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/access"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/password"
	"github.com/magabrotheeeer/fighters-hub/internal/lib/sl"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// Repository методы хранилища аккаунтов.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateAccount(ctx context.Context, acc models.Account) (*models.Account, error)
	GetAccountByUID(ctx context.Context, uid string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByLogin(ctx context.Context, login string) (*models.Account, error)
	UpdateAccount(ctx context.Context, acc *models.Account) error
	DeleteAccount(ctx context.Context, uid string) error
}

// Mirror синхронизирует аккаунт с профилем.
type Mirror interface {
	OnAccountCreated(ctx context.Context, acc *models.Account) error
	AfterAccountSaved(ctx context.Context, acc *models.Account) ([]models.MirrorField, error)
}

// TokenMaker выпускает JWT.
type TokenMaker interface {
	GenerateToken(userUID, username, role string) (string, error)
}

// Cache сбрасывает кэшированные проекции профиля.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Service бизнес-логика аккаунтов.
type Service struct {
	repo   Repository
	mirror Mirror
	tokens TokenMaker
	cache  Cache
	log    *slog.Logger
}

// NewService создает Service.
func NewService(repo Repository, mirror Mirror, tokens TokenMaker, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mirror: mirror,
		tokens: tokens,
		cache:  cache,
		log:    log,
	}
}

// Register создает аккаунт вместе с профилем и сразу выпускает токен.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, string, error) {
	const op = "services.account.Register"

	if req.Password != req.Password2 {
		return nil, "", apperr.ErrPasswordMismatch
	}
	if err := password.Validate(req.Password, req.Username); err != nil {
		return nil, "", err
	}
	hash, err := password.GetHash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	var acc *models.Account
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		created, err := s.repo.CreateAccount(ctx, models.Account{
			Username:     strings.TrimSpace(req.Username),
			PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		if err := s.mirror.OnAccountCreated(ctx, created); err != nil {
			return err
		}
		acc = created
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.GenerateToken(acc.UID, acc.Username, string(access.RoleOf(acc)))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("account registered", slog.String("op", op), slog.String("uid", acc.UID))
	return acc, token, nil
}

// Login проверяет пароль и выпускает токен. Login принимает номер телефона или username.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.Account, string, error) {
	const op = "services.account.Login"

	acc, err := s.repo.GetAccountByLogin(ctx, strings.TrimSpace(req.Login))
	if errors.Is(err, apperr.ErrAccountNotFound) {
		return nil, "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(acc.PasswordHash, req.Password); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(acc.UID, acc.Username, string(access.RoleOf(acc)))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return acc, token, nil
}

// Get возвращает аккаунт по uid.
func (s *Service) Get(ctx context.Context, uid string) (*models.Account, error) {
	return s.repo.GetAccountByUID(ctx, uid)
}

// UpdateAccount меняет username и email владельца и переносит изменения в профиль.
func (s *Service) UpdateAccount(ctx context.Context, uid string, upd models.AccountUpdate) (*models.Account, error) {
	const op = "services.account.UpdateAccount"

	var (
		acc         *models.Account
		oldUsername string
	)
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.GetAccountByUID(ctx, uid)
		if err != nil {
			return err
		}
		oldUsername = acc.Username
		if upd.Username != nil {
			acc.Username = strings.TrimSpace(*upd.Username)
		}
		if upd.Email != nil {
			acc.Email = upd.Email
		}
		if err := s.repo.UpdateAccount(ctx, acc); err != nil {
			return err
		}
		_, err = s.mirror.AfterAccountSaved(ctx, acc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, oldUsername, acc.Username)
	return acc, nil
}

// SetFlags меняет флаги promotion/staff. Доступно только администратору.
func (s *Service) SetFlags(ctx context.Context, actor *models.Account, username string, flags models.AccountFlags) (*models.Account, error) {
	const op = "services.account.SetFlags"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return nil, err
	}

	var acc *models.Account
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.repo.GetAccountByUsername(ctx, username)
		if err != nil {
			return err
		}
		if flags.IsPromotion != nil {
			acc.IsPromotion = *flags.IsPromotion
		}
		if flags.IsStaff != nil {
			acc.IsStaff = *flags.IsStaff
		}
		if err := s.repo.UpdateAccount(ctx, acc); err != nil {
			return err
		}
		_, err = s.mirror.AfterAccountSaved(ctx, acc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account flags changed", slog.String("op", op), slog.String("username", username),
		slog.Bool("is_promotion", acc.IsPromotion), slog.Bool("is_staff", acc.IsStaff))
	s.invalidate(ctx, acc.Username)
	return acc, nil
}

// Delete удаляет аккаунт вместе с профилем. Доступно только администратору.
func (s *Service) Delete(ctx context.Context, actor *models.Account, username string) error {
	const op = "services.account.Delete"
	if err := access.RequireRole(actor, access.RoleAdmin); err != nil {
		return err
	}

	acc, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteAccount(ctx, acc.UID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account deleted", slog.String("op", op), slog.String("username", username))
	s.invalidate(ctx, username)
	return nil
}

// EnsureAdmin создает учетную запись администратора из настроек, если ее нет.
func (s *Service) EnsureAdmin(ctx context.Context, cfg config.Admin) error {
	const op = "services.account.EnsureAdmin"
	if cfg.AdminUsername == "" {
		return nil
	}

	_, err := s.repo.GetAccountByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrAccountNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	var email *string
	if cfg.AdminEmail != "" {
		email = &cfg.AdminEmail
	}
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		acc, err := s.repo.CreateAccount(ctx, models.Account{
			Username:     cfg.AdminUsername,
			PhoneNumber:  cfg.AdminPhone,
			Email:        email,
			PasswordHash: hash,
			IsStaff:      true,
		})
		if err != nil {
			return err
		}
		return s.mirror.OnAccountCreated(ctx, acc)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin account created", slog.String("op", op), slog.String("username", cfg.AdminUsername))
	return nil
}

func (s *Service) invalidate(ctx context.Context, usernames ...string) {
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		keys = append(keys, cache.ProfileKey(u))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.Any("keys", keys), sl.Err(err))
	}
}
