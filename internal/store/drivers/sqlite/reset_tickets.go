package sqlite

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
)

type resetTicketsRepo struct {
	db dbtx
}

func (r *resetTicketsRepo) Create(ctx context.Context, t domain.ResetTicket) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reset_tickets (id, user_id, token_hash, expires_at, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.Used, t.CreatedAt)
	return mapUnique(err)
}

func (r *resetTicketsRepo) GetByTokenHash(ctx context.Context, hash string) (domain.ResetTicket, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM reset_tickets
		WHERE token_hash = ? AND used = 0`,
		hash)

	var t domain.ResetTicket
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		return domain.ResetTicket{}, mapNotFound(err)
	}
	return t, nil
}

func (r *resetTicketsRepo) MarkUsed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reset_tickets SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *resetTicketsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tickets WHERE used = 1 OR expires_at < ?`, now)
	return err
}
