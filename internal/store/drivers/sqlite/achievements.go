package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
)

type achievementsRepo struct {
	db dbtx
}

const achievementColumns = `id, user_id, category_id, title, description,
	date_achieved, importance_level, is_public, created_at, updated_at`

func scanAchievement(row interface{ Scan(...any) error }) (domain.Achievement, error) {
	var a domain.Achievement
	var categoryID sql.NullString
	var dateAchieved sql.NullTime
	err := row.Scan(&a.ID, &a.UserID, &categoryID, &a.Title, &a.Description,
		&dateAchieved, &a.ImportanceLevel, &a.IsPublic, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Achievement{}, err
	}
	a.CategoryID = mapNullString(categoryID)
	a.DateAchieved = mapNullTimePtr(dateAchieved)
	return a, nil
}

func (r *achievementsRepo) Create(ctx context.Context, a domain.Achievement) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (id, user_id, category_id, title, description,
			date_achieved, importance_level, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, mapStringNull(a.CategoryID), a.Title, a.Description,
		mapOptionalTime(a.DateAchieved), a.ImportanceLevel, a.IsPublic,
		a.CreatedAt, a.CreatedAt)
	return err
}

func (r *achievementsRepo) GetByID(ctx context.Context, id string) (domain.Achievement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if err != nil {
		return domain.Achievement{}, mapNotFound(err)
	}
	return a, nil
}

func (r *achievementsRepo) ListByUser(ctx context.Context, q store.ListByUserQuery) ([]domain.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE user_id = ?`
	args := []any{q.UserID}

	if q.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, q.CategoryID)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(q.Limit), q.Offset)

	return r.queryMany(ctx, query, args...)
}

func (r *achievementsRepo) ListAll(ctx context.Context, limit, offset int) ([]domain.Achievement, error) {
	return r.queryMany(ctx,
		`SELECT `+achievementColumns+` FROM achievements ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		normalizeLimit(limit), offset)
}

func (r *achievementsRepo) queryMany(ctx context.Context, query string, args ...any) ([]domain.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *achievementsRepo) Update(ctx context.Context, id string, upd domain.AchievementUpdate) error {
	set := []string{}
	args := []any{}

	if upd.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, mapStringNull(*upd.CategoryID))
	}
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.DateAchieved != nil {
		set = append(set, "date_achieved = ?")
		args = append(args, *upd.DateAchieved)
	}
	if upd.ImportanceLevel != nil {
		set = append(set, "importance_level = ?")
		args = append(args, *upd.ImportanceLevel)
	}
	if upd.IsPublic != nil {
		set = append(set, "is_public = ?")
		args = append(args, *upd.IsPublic)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE achievements SET %s WHERE id = ?`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *achievementsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
