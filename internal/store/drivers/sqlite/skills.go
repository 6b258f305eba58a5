package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
)

type skillsRepo struct {
	db dbtx
}

func (r *skillsRepo) Create(ctx context.Context, s domain.Skill) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO skills (id, user_id, name, proficiency_level, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.ProficiencyLevel, s.Category, s.CreatedAt, s.CreatedAt)
	return err
}

func (r *skillsRepo) GetByID(ctx context.Context, id string) (domain.Skill, error) {
	var s domain.Skill
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, proficiency_level, category, created_at, updated_at
		FROM skills WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.Name, &s.ProficiencyLevel, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Skill{}, mapNotFound(err)
	}
	return s, nil
}

func (r *skillsRepo) ListByUser(ctx context.Context, q store.ListByUserQuery) ([]domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, proficiency_level, category, created_at, updated_at
		FROM skills WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		q.UserID, normalizeLimit(q.Limit), q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.ProficiencyLevel,
			&s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *skillsRepo) Update(ctx context.Context, id string, upd domain.SkillUpdate) error {
	set := []string{}
	args := []any{}

	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.ProficiencyLevel != nil {
		set = append(set, "proficiency_level = ?")
		args = append(args, *upd.ProficiencyLevel)
	}
	if upd.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *upd.Category)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE skills SET %s WHERE id = ?`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *skillsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
