package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
)

func TestAchievementOwnershipRules(t *testing.T) {
	st := newTestStore(t)
	svc := &AchievementService{Store: st}
	ctx := context.Background()

	owner := seedUserAt(t, st, "owner@example.com", time.Now().UTC())
	other := seedUserAt(t, st, "other@example.com", time.Now().UTC())

	private, err := svc.Create(ctx, owner.ID, AchievementInput{Title: "Private win", ImportanceLevel: 3})
	require.NoError(t, err)

	public, err := svc.Create(ctx, owner.ID, AchievementInput{Title: "Public win", ImportanceLevel: 5, IsPublic: true})
	require.NoError(t, err)

	t.Run("owner reads both", func(t *testing.T) {
		_, err := svc.Get(ctx, owner.ID, private.ID)
		require.NoError(t, err)
		_, err = svc.Get(ctx, owner.ID, public.ID)
		require.NoError(t, err)
	})

	t.Run("stranger reads only public", func(t *testing.T) {
		_, err := svc.Get(ctx, other.ID, private.ID)
		require.ErrorIs(t, err, ErrForbidden)
		_, err = svc.Get(ctx, other.ID, public.ID)
		require.NoError(t, err)
	})

	t.Run("stranger cannot mutate", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.Update(ctx, other.ID, public.ID, domain.AchievementUpdate{Title: &title})
		require.ErrorIs(t, err, ErrForbidden)
		require.ErrorIs(t, svc.Delete(ctx, other.ID, public.ID), ErrForbidden)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner.ID, private.ID))
		_, err := svc.Get(ctx, owner.ID, private.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAchievementValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &AchievementService{Store: st}
	ctx := context.Background()
	owner := seedUserAt(t, st, "valid@example.com", time.Now().UTC())

	_, err := svc.Create(ctx, owner.ID, AchievementInput{Title: "", ImportanceLevel: 3})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, owner.ID, AchievementInput{Title: "x", ImportanceLevel: 6})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, owner.ID, AchievementInput{Title: "x", ImportanceLevel: 2, CategoryID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMediaFollowsAchievementOwnership(t *testing.T) {
	st := newTestStore(t)
	svc := &AchievementService{Store: st}
	ctx := context.Background()

	owner := seedUserAt(t, st, "m-owner@example.com", time.Now().UTC())
	other := seedUserAt(t, st, "m-other@example.com", time.Now().UTC())

	a, err := svc.Create(ctx, owner.ID, AchievementInput{Title: "With media", ImportanceLevel: 4})
	require.NoError(t, err)

	m, err := svc.AddMedia(ctx, owner.ID, a.ID, MediaInput{FileURL: "https://cdn.example/1.png", FileType: "image"})
	require.NoError(t, err)

	_, err = svc.AddMedia(ctx, other.ID, a.ID, MediaInput{FileURL: "https://cdn.example/2.png", FileType: "image"})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddMedia(ctx, owner.ID, a.ID, MediaInput{FileURL: "https://cdn.example/3.exe", FileType: "exe"})
	require.ErrorIs(t, err, ErrValidation)

	require.ErrorIs(t, svc.DeleteMedia(ctx, other.ID, m.ID), ErrForbidden)
	require.NoError(t, svc.DeleteMedia(ctx, owner.ID, m.ID))
}
