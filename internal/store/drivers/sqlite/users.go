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

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, full_name, avatar_url, bio, phone_number,
	is_active, is_admin, email_verified, phone_verified,
	subscription_tier, subscription_expires_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var subExpires sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.AvatarURL, &u.Bio, &u.PhoneNumber,
		&u.IsActive, &u.IsAdmin, &u.EmailVerified, &u.PhoneVerified,
		&u.SubscriptionTier, &subExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.SubscriptionExpiresAt = mapNullTimePtr(subExpires)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = domain.TierFree
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, full_name, avatar_url, bio, phone_number,
			is_active, is_admin, email_verified, phone_verified,
			subscription_tier, subscription_expires_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash,
		u.FullName, u.AvatarURL, u.Bio, u.PhoneNumber,
		u.IsActive, u.IsAdmin, u.EmailVerified, u.PhoneVerified,
		u.SubscriptionTier, mapOptionalTime(u.SubscriptionExpiresAt),
		u.CreatedAt, u.CreatedAt,
	)
	return mapUnique(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID string, upd domain.UserUpdate) error {
	set := []string{}
	args := []any{}

	if upd.FullName != nil {
		set = append(set, "full_name = ?")
		args = append(args, *upd.FullName)
	}
	if upd.AvatarURL != nil {
		set = append(set, "avatar_url = ?")
		args = append(args, *upd.AvatarURL)
	}
	if upd.Bio != nil {
		set = append(set, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if upd.PhoneNumber != nil {
		set = append(set, "phone_number = ?")
		args = append(args, *upd.PhoneNumber)
	}

	return r.applyUpdate(ctx, userID, set, args)
}

func (r *usersRepo) AdminUpdate(ctx context.Context, userID string, upd domain.AdminUserUpdate) error {
	set := []string{}
	args := []any{}

	if upd.FullName != nil {
		set = append(set, "full_name = ?")
		args = append(args, *upd.FullName)
	}
	if upd.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, *upd.IsActive)
	}
	if upd.IsAdmin != nil {
		set = append(set, "is_admin = ?")
		args = append(args, *upd.IsAdmin)
	}
	if upd.EmailVerified != nil {
		set = append(set, "email_verified = ?")
		args = append(args, *upd.EmailVerified)
	}
	if upd.PhoneVerified != nil {
		set = append(set, "phone_verified = ?")
		args = append(args, *upd.PhoneVerified)
	}
	if upd.SubscriptionTier != nil {
		set = append(set, "subscription_tier = ?")
		args = append(args, *upd.SubscriptionTier)
	}
	if upd.SubscriptionExpiresAt != nil {
		set = append(set, "subscription_expires_at = ?")
		args = append(args, *upd.SubscriptionExpiresAt)
	}

	return r.applyUpdate(ctx, userID, set, args)
}

// applyUpdate runs a partial UPDATE and bumps updated_at. A no-op update
// still verifies the row exists.
func (r *usersRepo) applyUpdate(ctx context.Context, userID string, set []string, args []any) error {
	if len(set) == 0 {
		return r.exists(ctx, userID)
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), userID)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) exists(ctx context.Context, userID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	return mapNotFound(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetEmailVerified(ctx context.Context, userID string, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = ?, updated_at = ? WHERE id = ?`,
		verified, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ListUsers(ctx context.Context, q store.ListUsersQuery) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}

	if q.Search != "" {
		query += ` WHERE email LIKE ? OR LOWER(full_name) LIKE ?`
		needle := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, needle, needle)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(q.Limit), q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) ContentCounts(ctx context.Context, userID string) (achievements, skills, goals int64, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM achievements WHERE user_id = ?),
			(SELECT COUNT(*) FROM skills WHERE user_id = ?),
			(SELECT COUNT(*) FROM goals WHERE user_id = ?)`,
		userID, userID, userID,
	).Scan(&achievements, &skills, &goals)
	return achievements, skills, goals, err
}

// requireRow maps a zero-row UPDATE/DELETE to store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}
