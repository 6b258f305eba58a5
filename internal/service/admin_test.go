package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/cryptox"
	"github.com/summitlog/summitlog/pkg/idx"
)

func seedUserAt(t *testing.T, st store.Store, email string, createdAt time.Time) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	u := domain.User{
		ID:               idx.NewAt(createdAt).String(),
		Email:            email,
		PasswordHash:     hash,
		IsActive:         true,
		SubscriptionTier: domain.TierFree,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestUserGrowth(t *testing.T) {
	st := newTestStore(t)
	clock := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := &AdminService{Store: st, Now: func() time.Time { return clock }}
	ctx := context.Background()

	// Two before the window, one two days ago, two today.
	seedUserAt(t, st, "old1@example.com", clock.AddDate(0, 0, -40))
	seedUserAt(t, st, "old2@example.com", clock.AddDate(0, 0, -40))
	seedUserAt(t, st, "mid@example.com", clock.AddDate(0, 0, -2))
	seedUserAt(t, st, "new1@example.com", clock.Add(-2*time.Hour))
	seedUserAt(t, st, "new2@example.com", clock.Add(-1*time.Hour))

	points, err := svc.UserGrowth(ctx, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	require.Equal(t, "2026-03-04", points[0].Date)
	require.Equal(t, int64(2), points[0].TotalUsers)

	require.Equal(t, "2026-03-08", points[4].Date)
	require.Equal(t, int64(1), points[4].NewUsers)
	require.Equal(t, int64(3), points[4].TotalUsers)

	require.Equal(t, "2026-03-10", points[6].Date)
	require.Equal(t, int64(2), points[6].NewUsers)
	require.Equal(t, int64(5), points[6].TotalUsers)
}

func TestStatsOverview(t *testing.T) {
	st := newTestStore(t)
	clock := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := &AdminService{Store: st, Now: func() time.Time { return clock }}
	ctx := context.Background()

	seedUserAt(t, st, "a@example.com", clock.AddDate(0, 0, -3))
	seedUserAt(t, st, "b@example.com", clock.Add(-1*time.Hour))

	stats, err := svc.StatsOverview(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(2), stats.ActiveUsers)
	require.Equal(t, int64(1), stats.UsersCreatedToday)
}

func TestAdminDeleteUserGuardsSelf(t *testing.T) {
	st := newTestStore(t)
	svc := &AdminService{Store: st}
	ctx := context.Background()

	admin := seedUserAt(t, st, "admin@example.com", time.Now().UTC())
	victim := seedUserAt(t, st, "victim@example.com", time.Now().UTC())

	require.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), ErrSelfDelete)
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, victim.ID))

	_, err := st.Users().GetUserByID(ctx, victim.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAdminUpdateRejectsUnknownTier(t *testing.T) {
	st := newTestStore(t)
	svc := &AdminService{Store: st}
	user := seedUserAt(t, st, "tier@example.com", time.Now().UTC())

	bad := "platinum"
	_, err := svc.UpdateUser(context.Background(), user.ID, domain.AdminUserUpdate{SubscriptionTier: &bad})
	require.ErrorIs(t, err, ErrValidation)
}
