package sqlite

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
)

type mediaRepo struct {
	db dbtx
}

func (r *mediaRepo) Create(ctx context.Context, m domain.Media) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media (id, achievement_id, file_url, file_type, caption, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.AchievementID, m.FileURL, m.FileType, m.Caption, m.CreatedAt)
	return err
}

func (r *mediaRepo) GetByID(ctx context.Context, id string) (domain.Media, error) {
	var m domain.Media
	err := r.db.QueryRowContext(ctx, `
		SELECT id, achievement_id, file_url, file_type, caption, created_at
		FROM media WHERE id = ?`, id,
	).Scan(&m.ID, &m.AchievementID, &m.FileURL, &m.FileType, &m.Caption, &m.CreatedAt)
	if err != nil {
		return domain.Media{}, mapNotFound(err)
	}
	return m, nil
}

func (r *mediaRepo) ListByAchievement(ctx context.Context, achievementID string) ([]domain.Media, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, achievement_id, file_url, file_type, caption, created_at
		FROM media WHERE achievement_id = ? ORDER BY created_at`, achievementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Media
	for rows.Next() {
		var m domain.Media
		if err := rows.Scan(&m.ID, &m.AchievementID, &m.FileURL, &m.FileType,
			&m.Caption, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
