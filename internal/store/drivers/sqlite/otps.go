package sqlite

import (
	"context"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
)

type otpsRepo struct {
	db dbtx
}

func (r *otpsRepo) InvalidateUnconsumed(ctx context.Context, subject domain.Subject, purpose string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE otps SET consumed = 1
		WHERE subject_kind = ? AND subject_value = ? AND purpose = ? AND consumed = 0`,
		string(subject.Kind), subject.Value, purpose)
	return err
}

func (r *otpsRepo) Insert(ctx context.Context, otp domain.OTP) error {
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO otps (id, subject_kind, subject_value, code, purpose, delivery_method, expires_at, consumed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		otp.ID, string(otp.Subject.Kind), otp.Subject.Value, otp.Code,
		otp.Purpose, otp.DeliveryMethod, otp.ExpiresAt, otp.Consumed, otp.CreatedAt)
	return err
}

func (r *otpsRepo) FindUnconsumed(ctx context.Context, subject domain.Subject, purpose, code string) (domain.OTP, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, subject_kind, subject_value, code, purpose, delivery_method, expires_at, consumed, created_at
		FROM otps
		WHERE subject_kind = ? AND subject_value = ? AND purpose = ? AND code = ? AND consumed = 0
		ORDER BY created_at DESC
		LIMIT 1`,
		string(subject.Kind), subject.Value, purpose, code)

	var o domain.OTP
	var kind string
	err := row.Scan(&o.ID, &kind, &o.Subject.Value, &o.Code, &o.Purpose,
		&o.DeliveryMethod, &o.ExpiresAt, &o.Consumed, &o.CreatedAt)
	if err != nil {
		return domain.OTP{}, mapNotFound(err)
	}
	o.Subject.Kind = domain.SubjectKind(kind)
	return o, nil
}

func (r *otpsRepo) MarkConsumed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE otps SET consumed = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *otpsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM otps WHERE consumed = 1 OR expires_at < ?`, now)
	return err
}
