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

type goalsRepo struct {
	db dbtx
}

func scanGoal(row interface{ Scan(...any) error }) (domain.Goal, error) {
	var g domain.Goal
	var target sql.NullTime
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &target,
		&g.Status, &g.ProgressPercentage, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Goal{}, err
	}
	g.TargetDate = mapNullTimePtr(target)
	return g, nil
}

func (r *goalsRepo) Create(ctx context.Context, g domain.Goal) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Status == "" {
		g.Status = domain.GoalNotStarted
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, description, target_date, status, progress_percentage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Description, mapOptionalTime(g.TargetDate),
		g.Status, g.ProgressPercentage, g.CreatedAt, g.CreatedAt)
	return err
}

func (r *goalsRepo) GetByID(ctx context.Context, id string) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, target_date, status, progress_percentage, created_at, updated_at
		FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return domain.Goal{}, mapNotFound(err)
	}
	return g, nil
}

func (r *goalsRepo) ListByUser(ctx context.Context, q store.ListByUserQuery) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, target_date, status, progress_percentage, created_at, updated_at
		FROM goals WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		q.UserID, normalizeLimit(q.Limit), q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *goalsRepo) Update(ctx context.Context, id string, upd domain.GoalUpdate) error {
	set := []string{}
	args := []any{}

	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.TargetDate != nil {
		set = append(set, "target_date = ?")
		args = append(args, *upd.TargetDate)
	}
	if upd.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.ProgressPercentage != nil {
		set = append(set, "progress_percentage = ?")
		args = append(args, *upd.ProgressPercentage)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE goals SET %s WHERE id = ?`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *goalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
