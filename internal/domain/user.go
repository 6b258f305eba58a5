package domain

import "time"

// Subscription tiers. Pro is time-bounded; everything else is free.
const (
	TierFree = "free"
	TierPro  = "pro"
)

type User struct {
	ID            string
	Email         string // stored lowercase, unique
	PasswordHash  string // argon2id encoded
	FullName      string
	AvatarURL     string
	Bio           string
	PhoneNumber   string
	IsActive      bool
	IsAdmin       bool
	EmailVerified bool
	PhoneVerified bool

	SubscriptionTier      string     // TierFree or TierPro
	SubscriptionExpiresAt *time.Time // nil means no expiry recorded

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveTier returns the tier the user is actually entitled to right
// now: a pro subscription past its expiry degrades to free.
func (u User) EffectiveTier(now time.Time) string {
	if u.SubscriptionTier != TierPro {
		return TierFree
	}
	if u.SubscriptionExpiresAt != nil && now.After(*u.SubscriptionExpiresAt) {
		return TierFree
	}
	return TierPro
}

// UserUpdate is an allow-listed partial update applied from the
// user-facing profile path. Sensitive flags (admin, active, tier) are
// deliberately absent so they can never be mass-assigned here.
type UserUpdate struct {
	FullName    *string
	AvatarURL   *string
	Bio         *string
	PhoneNumber *string
}

// AdminUserUpdate is the partial update available to the admin panel.
type AdminUserUpdate struct {
	FullName              *string
	IsActive              *bool
	IsAdmin               *bool
	EmailVerified         *bool
	PhoneVerified         *bool
	SubscriptionTier      *string
	SubscriptionExpiresAt *time.Time
}
