package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/fighters-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

const accountColumns = `uid, username, phone_number, email, password_hash,
	is_verified, is_promotion, is_staff, creator, created_at`

func scanAccount(row scanner) (*models.Account, error) {
	var (
		acc     models.Account
		email   sql.NullString
		creator sql.NullString
	)
	err := row.Scan(&acc.UID, &acc.Username, &acc.PhoneNumber, &email, &acc.PasswordHash,
		&acc.IsVerified, &acc.IsPromotion, &acc.IsStaff, &creator, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	acc.Email = strPtr(email)
	acc.Creator = strPtr(creator)
	return &acc, nil
}

func accountConflict(err error) error {
	switch name, _ := isUniqueViolation(err); name {
	case "accounts_username_key":
		return apperr.ErrUsernameTaken
	case "accounts_phone_number_key":
		return apperr.ErrPhoneTaken
	}
	return err
}

// CreateAccount сохраняет аккаунт и возвращает его с uid и датой создания.
func (s *Storage) CreateAccount(ctx context.Context, acc models.Account) (*models.Account, error) {
	const op = "storage.CreateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO accounts (username, phone_number, email, password_hash,
				is_verified, is_promotion, is_staff, creator)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid, created_at`
	err := s.conn(ctx).QueryRowContext(ctx, query,
		acc.Username, acc.PhoneNumber, acc.Email, acc.PasswordHash,
		acc.IsVerified, acc.IsPromotion, acc.IsStaff, acc.Creator,
	).Scan(&acc.UID, &acc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, accountConflict(err))
	}
	return &acc, nil
}

func (s *Storage) getAccount(ctx context.Context, op, where string, arg any) (*models.Account, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	acc, err := scanAccount(s.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// GetAccountByUID возвращает аккаунт по uid.
func (s *Storage) GetAccountByUID(ctx context.Context, uid string) (*models.Account, error) {
	return s.getAccount(ctx, "storage.GetAccountByUID", "uid = $1", uid)
}

// GetAccountByUsername возвращает аккаунт по username.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getAccount(ctx, "storage.GetAccountByUsername", "username = $1", username)
}

// GetAccountByLogin ищет аккаунт по номеру телефона или username.
func (s *Storage) GetAccountByLogin(ctx context.Context, login string) (*models.Account, error) {
	return s.getAccount(ctx, "storage.GetAccountByLogin", "phone_number = $1 OR username = $1 ORDER BY phone_number = $1 DESC LIMIT 1", login)
}

// UpdateAccount сохраняет username, email и флаги promotion/staff.
// is_verified меняется только через SetAccountVerified.
func (s *Storage) UpdateAccount(ctx context.Context, acc *models.Account) error {
	const op = "storage.UpdateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE accounts SET username = $1, email = $2, is_promotion = $3, is_staff = $4
			  WHERE uid = $5`
	res, err := s.conn(ctx).ExecContext(ctx, query, acc.Username, acc.Email, acc.IsPromotion, acc.IsStaff, acc.UID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, accountConflict(err))
	}
	return requireOne(res, op, apperr.ErrAccountNotFound)
}

// SetAccountVerified меняет флаг верификации аккаунта.
func (s *Storage) SetAccountVerified(ctx context.Context, uid string, verified bool) error {
	const op = "storage.SetAccountVerified"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `UPDATE accounts SET is_verified = $1 WHERE uid = $2`, verified, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrAccountNotFound)
}

// UpdateAccountMirror записывает в аккаунт только перечисленные зеркалируемые поля.
func (s *Storage) UpdateAccountMirror(ctx context.Context, uid string, m models.Mirror, fields []models.MirrorField) error {
	const op = "storage.UpdateAccountMirror"
	if len(fields) == 0 {
		return nil
	}
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	set, args := mirrorSet(m, fields)
	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE uid = $%d`, set, len(args))
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, accountConflict(err))
	}
	return requireOne(res, op, apperr.ErrAccountNotFound)
}

// DeleteAccount удаляет аккаунт вместе с профилем и всеми связанными записями.
func (s *Storage) DeleteAccount(ctx context.Context, uid string) error {
	const op = "storage.DeleteAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM accounts WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrAccountNotFound)
}

func mirrorSet(m models.Mirror, fields []models.MirrorField) (string, []any) {
	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		var v any
		switch f {
		case models.FieldUsername:
			v = m.Username
		case models.FieldIsVerified:
			v = m.IsVerified
		case models.FieldIsPromotion:
			v = m.IsPromotion
		default:
			continue
		}
		args = append(args, v)
		parts = append(parts, fmt.Sprintf("%s = $%d", f, len(args)))
	}
	return strings.Join(parts, ", "), args
}

func requireOne(res sql.Result, op string, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return nil
}
