package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
)

type categoriesRepo struct {
	db dbtx
}

func (r *categoriesRepo) Create(ctx context.Context, c domain.Category) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Icon, c.Color, c.Description, c.CreatedAt, c.CreatedAt)
	return mapUnique(err)
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, icon, color, description, created_at, updated_at
		FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) List(ctx context.Context, limit, offset int) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, color, description, created_at, updated_at
		FROM categories ORDER BY name LIMIT ? OFFSET ?`,
		normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.Description,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) Update(ctx context.Context, id string, upd domain.CategoryUpdate) error {
	set := []string{}
	args := []any{}

	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Icon != nil {
		set = append(set, "icon = ?")
		args = append(args, *upd.Icon)
	}
	if upd.Color != nil {
		set = append(set, "color = ?")
		args = append(args, *upd.Color)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE categories SET %s WHERE id = ?`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return mapUnique(err)
	}
	return requireRow(res)
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
