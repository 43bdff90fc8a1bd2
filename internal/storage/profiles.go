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

// profileColumnsOf перечисляет колонки профиля с алиасом таблицы alias.
func profileColumnsOf(alias string) string {
	cols := []string{"account_uid", "username", "full_name", "birth_date", "weight", "height",
		"sport", "city", "sport_time", "profile_picture", "description", "rank", "rank_file",
		"video_links", "instagram_link", "status", "display_status", "is_verified", "is_promotion", "updated_at"}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

var profileColumns = profileColumnsOf("p")

// profileRow принимает сырые значения колонок профиля.
type profileRow struct {
	p             models.Profile
	birthDate     sql.NullTime
	weight        sql.NullInt64
	height        sql.NullInt64
	videoLinks    []byte
	displayStatus sql.NullString
	status        string
}

func (r *profileRow) dest() []any {
	return []any{&r.p.AccountUID, &r.p.Username, &r.p.FullName, &r.birthDate, &r.weight, &r.height,
		&r.p.Sport, &r.p.City, &r.p.SportTime, &r.p.ProfilePicture, &r.p.Description, &r.p.Rank, &r.p.RankFile,
		&r.videoLinks, &r.p.InstagramLink, &r.status, &r.displayStatus, &r.p.IsVerified, &r.p.IsPromotion, &r.p.UpdatedAt}
}

func (r *profileRow) profile() (*models.Profile, error) {
	p := r.p
	p.BirthDate = timePtr(r.birthDate)
	p.Weight = intPtr(r.weight)
	p.Height = intPtr(r.height)
	p.Status = models.Status(r.status)
	p.DisplayStatus = strPtr(r.displayStatus)
	links, err := jsonList(r.videoLinks)
	if err != nil {
		return nil, err
	}
	p.VideoLinks = links
	return &p, nil
}

func scanProfile(row scanner) (*models.Profile, error) {
	var r profileRow
	if err := row.Scan(r.dest()...); err != nil {
		return nil, err
	}
	return r.profile()
}

func scanProfiles(rows *sql.Rows) ([]*models.Profile, error) {
	defer func() { _ = rows.Close() }()
	var res []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// CreateProfile создает профиль аккаунта, если его еще нет.
// Возвращает true, если профиль был создан этим вызовом.
func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) (bool, error) {
	const op = "storage.CreateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	if p.Status == "" {
		p.Status = models.StatusFree
	}
	links, err := jsonListParam(p.VideoLinks)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO profiles (account_uid, username, full_name, birth_date, weight, height,
				sport, city, sport_time, profile_picture, description, rank, rank_file,
				video_links, instagram_link, status, is_verified, is_promotion)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::jsonb, $15, $16, $17, $18)
			  ON CONFLICT (account_uid) DO NOTHING`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		p.AccountUID, p.Username, p.FullName, p.BirthDate, p.Weight, p.Height,
		p.Sport, p.City, p.SportTime, p.ProfilePicture, p.Description, p.Rank, p.RankFile,
		links, p.InstagramLink, string(p.Status), p.IsVerified, p.IsPromotion)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%s: %w", op, apperr.ErrAccountNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n == 1, nil
}

func (s *Storage) getProfile(ctx context.Context, op, where string, arg any) (*models.Profile, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE ` + where
	p, err := scanProfile(s.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetProfile возвращает профиль аккаунта.
func (s *Storage) GetProfile(ctx context.Context, accountUID string) (*models.Profile, error) {
	return s.getProfile(ctx, "storage.GetProfile", "p.account_uid = $1", accountUID)
}

// GetProfileByUsername возвращает профиль по username.
func (s *Storage) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getProfile(ctx, "storage.GetProfileByUsername", "p.username = $1", username)
}

// UpdateProfile сохраняет редактируемые владельцем поля и username.
// Флаги is_verified и is_promotion здесь не пишутся.
func (s *Storage) UpdateProfile(ctx context.Context, p *models.Profile) error {
	const op = "storage.UpdateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	links, err := jsonListParam(p.VideoLinks)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE profiles SET username = $1, full_name = $2, birth_date = $3, weight = $4,
				height = $5, sport = $6, city = $7, sport_time = $8, profile_picture = $9,
				description = $10, rank = $11, rank_file = $12, video_links = $13::jsonb,
				instagram_link = $14, status = $15, updated_at = NOW()
			  WHERE account_uid = $16
			  RETURNING updated_at`
	err = s.conn(ctx).QueryRowContext(ctx, query,
		p.Username, p.FullName, p.BirthDate, p.Weight, p.Height, p.Sport, p.City, p.SportTime,
		p.ProfilePicture, p.Description, p.Rank, p.RankFile, links, p.InstagramLink,
		string(p.Status), p.AccountUID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrProfileNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfileMirror записывает в профиль только перечисленные зеркалируемые поля.
func (s *Storage) UpdateProfileMirror(ctx context.Context, accountUID string, m models.Mirror, fields []models.MirrorField) error {
	const op = "storage.UpdateProfileMirror"
	if len(fields) == 0 {
		return nil
	}
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	set, args := mirrorSet(m, fields)
	args = append(args, accountUID)
	query := fmt.Sprintf(`UPDATE profiles SET %s, updated_at = NOW() WHERE account_uid = $%d`, set, len(args))
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrProfileNotFound)
}

// SetDisplayStatus обновляет кэш последнего саб-статуса в профиле.
func (s *Storage) SetDisplayStatus(ctx context.Context, accountUID, message string) error {
	const op = "storage.SetDisplayStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE profiles SET display_status = $1, updated_at = NOW() WHERE account_uid = $2`, message, accountUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireOne(res, op, apperr.ErrProfileNotFound)
}

// ListVerifiedProfiles возвращает верифицированные профили по алфавиту.
func (s *Storage) ListVerifiedProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	const op = "storage.ListVerifiedProfiles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles p
			  WHERE p.is_verified
			  ORDER BY p.username
			  LIMIT $1 OFFSET $2`
	rows, err := s.conn(ctx).QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := scanProfiles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// FindVerifiedByWeightRange возвращает верифицированные профили с весом в [minWeight, maxWeight].
// maxWeight == nil снимает верхнюю границу. Профили без веса не попадают в выборку.
func (s *Storage) FindVerifiedByWeightRange(ctx context.Context, minWeight int, maxWeight *int) ([]*models.Profile, error) {
	const op = "storage.FindVerifiedByWeightRange"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles p
			  JOIN accounts a ON a.uid = p.account_uid
			  WHERE a.is_verified AND p.weight >= $1 AND ($2::int IS NULL OR p.weight <= $2)
			  ORDER BY p.account_uid`
	rows, err := s.conn(ctx).QueryContext(ctx, query, minWeight, maxWeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := scanProfiles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
