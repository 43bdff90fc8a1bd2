package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) anyOf(cond string, values []string) {
	if len(values) == 0 {
		return
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		w.args = append(w.args, v)
		parts = append(parts, fmt.Sprintf(cond, len(w.args)))
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

// SearchProfiles ищет верифицированных бойцов по фильтру. Возраст считается как
// разница календарных лет между now и датой рождения.
func (s *Storage) SearchProfiles(ctx context.Context, f models.SearchFilter, now time.Time) ([]*models.Profile, error) {
	const op = "storage.SearchProfiles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	w := &whereBuilder{conds: []string{"a.is_verified"}}
	if f.City != "" {
		w.add("LOWER(p.city) = LOWER($%d)", f.City)
	}
	if f.Sport != "" {
		w.add("LOWER(p.sport) = LOWER($%d)", f.Sport)
	}
	if f.Status != "" {
		w.add("LOWER(p.status) = LOWER($%d)", f.Status)
	}
	if tokens := strings.Fields(f.FullName); len(tokens) > 0 {
		patterns := make([]string, len(tokens))
		for i, t := range tokens {
			patterns[i] = "%" + likeEscaper.Replace(t) + "%"
		}
		w.anyOf("p.full_name ILIKE $%d", patterns)
	}
	if f.WeightMin != nil {
		w.add("p.weight >= $%d", *f.WeightMin)
	}
	if f.WeightMax != nil {
		w.add("p.weight <= $%d", *f.WeightMax)
	}
	if f.HeightMin != nil {
		w.add("p.height >= $%d", *f.HeightMin)
	}
	if f.HeightMax != nil {
		w.add("p.height <= $%d", *f.HeightMax)
	}
	if f.AgeMin != nil || f.AgeMax != nil {
		w.conds = append(w.conds, "p.birth_date IS NOT NULL")
		age := fmt.Sprintf("(%d - EXTRACT(YEAR FROM p.birth_date)::int)", now.Year())
		if f.AgeMin != nil {
			w.add(age+" >= $%d", *f.AgeMin)
		}
		if f.AgeMax != nil {
			w.add(age+" <= $%d", *f.AgeMax)
		}
	}

	query := `SELECT ` + profileColumns + ` FROM profiles p
			  JOIN accounts a ON a.uid = p.account_uid
			  WHERE ` + strings.Join(w.conds, " AND ") + `
			  ORDER BY p.username`
	rows, err := s.conn(ctx).QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := scanProfiles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
