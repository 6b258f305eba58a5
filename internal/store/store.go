package store

import (
	"context"
	"errors"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	OTPs() OTPs
	ResetTickets() ResetTickets
	Achievements() Achievements
	Skills() Skills
	Goals() Goals
	Categories() Categories
	Media() Media
	Stats() Stats

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step operations that must be atomic
	// (e.g. OTP invalidate-then-insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ListUsersQuery filters the admin user listing.
type ListUsersQuery struct {
	Search string // matches email or full name, case-insensitive substring
	Limit  int
	Offset int
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively (emails are stored lowercase).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile applies the user-facing allow-listed partial update.
	UpdateProfile(ctx context.Context, userID string, upd domain.UserUpdate) error

	// AdminUpdate applies the admin-panel allow-listed partial update.
	AdminUpdate(ctx context.Context, userID string, upd domain.AdminUserUpdate) error

	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	SetEmailVerified(ctx context.Context, userID string, verified bool) error

	// DeleteUser cascades to achievements, skills, goals and OTPs (per schema).
	DeleteUser(ctx context.Context, userID string) error

	ListUsers(ctx context.Context, q ListUsersQuery) ([]domain.User, error)

	// ContentCounts returns how many achievements, skills and goals the
	// user owns. Used by the admin listing.
	ContentCounts(ctx context.Context, userID string) (achievements, skills, goals int64, err error)
}

type OTPs interface {
	// InvalidateUnconsumed marks every unconsumed code for the
	// (subject, purpose) pair as consumed.
	InvalidateUnconsumed(ctx context.Context, subject domain.Subject, purpose string) error

	Insert(ctx context.Context, otp domain.OTP) error

	// FindUnconsumed returns the most recent unconsumed record for
	// (subject, purpose) whose code equals the supplied code.
	FindUnconsumed(ctx context.Context, subject domain.Subject, purpose, code string) (domain.OTP, error)

	MarkConsumed(ctx context.Context, id string) error

	// DeleteExpired removes expired and consumed rows (housekeeping).
	DeleteExpired(ctx context.Context, now time.Time) error
}

type ResetTickets interface {
	Create(ctx context.Context, t domain.ResetTicket) error

	// GetByTokenHash returns an unused, unexpired ticket by fingerprint.
	GetByTokenHash(ctx context.Context, hash string) (domain.ResetTicket, error)

	MarkUsed(ctx context.Context, id string) error

	DeleteExpired(ctx context.Context, now time.Time) error
}

// ListByUserQuery pages through a user's own resources.
type ListByUserQuery struct {
	UserID     string
	CategoryID string // achievements only; empty means no filter
	Limit      int
	Offset     int
}

type Achievements interface {
	Create(ctx context.Context, a domain.Achievement) error
	GetByID(ctx context.Context, id string) (domain.Achievement, error)
	ListByUser(ctx context.Context, q ListByUserQuery) ([]domain.Achievement, error)
	Update(ctx context.Context, id string, upd domain.AchievementUpdate) error
	Delete(ctx context.Context, id string) error

	// ListAll pages through every user's achievements (admin moderation).
	ListAll(ctx context.Context, limit, offset int) ([]domain.Achievement, error)
}

type Skills interface {
	Create(ctx context.Context, s domain.Skill) error
	GetByID(ctx context.Context, id string) (domain.Skill, error)
	ListByUser(ctx context.Context, q ListByUserQuery) ([]domain.Skill, error)
	Update(ctx context.Context, id string, upd domain.SkillUpdate) error
	Delete(ctx context.Context, id string) error
}

type Goals interface {
	Create(ctx context.Context, g domain.Goal) error
	GetByID(ctx context.Context, id string) (domain.Goal, error)
	ListByUser(ctx context.Context, q ListByUserQuery) ([]domain.Goal, error)
	Update(ctx context.Context, id string, upd domain.GoalUpdate) error
	Delete(ctx context.Context, id string) error
}

type Categories interface {
	// Create returns ErrAlreadyExists when the name is taken.
	Create(ctx context.Context, c domain.Category) error
	GetByID(ctx context.Context, id string) (domain.Category, error)
	List(ctx context.Context, limit, offset int) ([]domain.Category, error)
	Update(ctx context.Context, id string, upd domain.CategoryUpdate) error
	Delete(ctx context.Context, id string) error
}

type Media interface {
	Create(ctx context.Context, m domain.Media) error
	GetByID(ctx context.Context, id string) (domain.Media, error)
	ListByAchievement(ctx context.Context, achievementID string) ([]domain.Media, error)
	Delete(ctx context.Context, id string) error
}

// SystemStats is the admin overview aggregate.
type SystemStats struct {
	TotalUsers        int64
	ActiveUsers       int64
	VerifiedUsers     int64
	ProUsers          int64
	TotalAchievements int64
	TotalSkills       int64
	TotalGoals        int64
	UsersCreatedToday int64
}

type Stats interface {
	// Overview aggregates system-wide counters. dayStart bounds the
	// "created today" counter.
	Overview(ctx context.Context, dayStart time.Time) (SystemStats, error)

	// CountUsersCreatedBefore supports the growth chart's running total.
	CountUsersCreatedBefore(ctx context.Context, before time.Time) (int64, error)

	// UserCreationTimesSince returns creation timestamps of users created
	// at or after since, ascending.
	UserCreationTimesSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
