package service

import (
	"context"
	"errors"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
)

var ErrSelfDelete = errors.New("self_delete")

// AdminService backs the moderation panel: user management and system
// statistics.
type AdminService struct {
	Store store.Store

	Now func() time.Time
}

func (s *AdminService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// UserSummary is a listed user plus how much content they own.
type UserSummary struct {
	User             domain.User
	AchievementCount int64
	SkillCount       int64
	GoalCount        int64
}

func (s *AdminService) ListUsers(ctx context.Context, q store.ListUsersQuery) ([]UserSummary, error) {
	users, err := s.Store.Users().ListUsers(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		a, sk, g, err := s.Store.Users().ContentCounts(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, UserSummary{User: u, AchievementCount: a, SkillCount: sk, GoalCount: g})
	}
	return out, nil
}

func (s *AdminService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AdminService) UpdateUser(ctx context.Context, userID string, upd domain.AdminUserUpdate) (domain.User, error) {
	if upd.SubscriptionTier != nil {
		switch *upd.SubscriptionTier {
		case domain.TierFree, domain.TierPro:
		default:
			return domain.User{}, ErrValidation
		}
	}
	if err := s.Store.Users().AdminUpdate(ctx, userID, upd); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// DeleteUser removes an account and, via schema cascades, everything it
// owns. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if callerID == userID {
		return ErrSelfDelete
	}
	return s.Store.Users().DeleteUser(ctx, userID)
}

func (s *AdminService) StatsOverview(ctx context.Context) (store.SystemStats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.Store.Stats().Overview(ctx, dayStart)
}

// GrowthPoint is one day in the signup growth series.
type GrowthPoint struct {
	Date       string // YYYY-MM-DD, UTC
	NewUsers   int64
	TotalUsers int64
}

// UserGrowth returns a per-day signup series for the trailing N days,
// newest day last. The running total includes users created before the
// window.
func (s *AdminService) UserGrowth(ctx context.Context, days int) ([]GrowthPoint, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := dayStart.AddDate(0, 0, -(days - 1))

	base, err := s.Store.Stats().CountUsersCreatedBefore(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	times, err := s.Store.Stats().UserCreationTimesSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int64, days)
	for _, t := range times {
		perDay[t.UTC().Format("2006-01-02")]++
	}

	points := make([]GrowthPoint, 0, days)
	total := base
	for d := 0; d < days; d++ {
		day := windowStart.AddDate(0, 0, d).Format("2006-01-02")
		n := perDay[day]
		total += n
		points = append(points, GrowthPoint{Date: day, NewUsers: n, TotalUsers: total})
	}
	return points, nil
}

// ListAllAchievements pages through every user's achievements for
// moderation.
func (s *AdminService) ListAllAchievements(ctx context.Context, limit, offset int) ([]domain.Achievement, error) {
	return s.Store.Achievements().ListAll(ctx, limit, offset)
}
