package sqlite

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
)

type statsRepo struct {
	db dbtx
}

func (r *statsRepo) Overview(ctx context.Context, dayStart time.Time) (store.SystemStats, error) {
	var s store.SystemStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = 1),
			(SELECT COUNT(*) FROM users WHERE email_verified = 1),
			(SELECT COUNT(*) FROM users WHERE subscription_tier = ?),
			(SELECT COUNT(*) FROM achievements),
			(SELECT COUNT(*) FROM skills),
			(SELECT COUNT(*) FROM goals),
			(SELECT COUNT(*) FROM users WHERE created_at >= ?)`,
		domain.TierPro, dayStart,
	).Scan(
		&s.TotalUsers, &s.ActiveUsers, &s.VerifiedUsers, &s.ProUsers,
		&s.TotalAchievements, &s.TotalSkills, &s.TotalGoals, &s.UsersCreatedToday,
	)
	return s, err
}

func (r *statsRepo) CountUsersCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE created_at < ?`, before).Scan(&n)
	return n, err
}

func (r *statsRepo) UserCreationTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT created_at FROM users WHERE created_at >= ? ORDER BY created_at`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
