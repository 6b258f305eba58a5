package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/internal/store/drivers/sqlite"
	"github.com/summitlog/summitlog/pkg/cryptox"
	"github.com/summitlog/summitlog/pkg/idx"
	"github.com/summitlog/summitlog/pkg/jwtx"
)

func newGateStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedGateUser(t *testing.T, st store.Store, email string, active, admin bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	now := time.Now().UTC()
	u := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		PasswordHash:     hash,
		IsActive:         active,
		IsAdmin:          admin,
		SubscriptionTier: domain.TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestAuthGate(t *testing.T) {
	st := newGateStore(t)
	signer := jwtx.NewSigner([]byte("gate-secret"), "summitlog-test")
	gate := &AuthGate{Signer: signer, Store: st}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := gate.RequireUser(okHandler)
	adminOnly := gate.RequireUser(gate.RequireAdmin(okHandler))

	user := seedGateUser(t, st, "user@example.com", true, false)
	admin := seedGateUser(t, st, "admin@example.com", true, true)
	inactive := seedGateUser(t, st, "inactive@example.com", false, false)

	mint := func(id string) string {
		tok, err := signer.Mint(id, 30*time.Minute)
		require.NoError(t, err)
		return tok
	}

	do := func(h http.Handler, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("missing token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do(protected, ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do(protected, "not-a-jwt"))
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := signer.MintAt(user.ID, 30*time.Minute, time.Now().UTC().Add(-31*time.Minute))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, do(protected, tok))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwtx.NewSigner([]byte("other-secret"), "summitlog-test")
		tok, err := other.Mint(user.ID, 30*time.Minute)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, do(protected, tok))
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		ghost := seedGateUser(t, st, "ghost@example.com", true, false)
		tok := mint(ghost.ID)
		require.NoError(t, st.Users().DeleteUser(context.Background(), ghost.ID))
		require.Equal(t, http.StatusNotFound, do(protected, tok))
	})

	t.Run("inactive account", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, do(protected, mint(inactive.ID)))
	})

	t.Run("active user passes", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(protected, mint(user.ID)))
	})

	t.Run("non-admin blocked from admin route", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, do(adminOnly, mint(user.ID)))
	})

	t.Run("admin passes admin route", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(adminOnly, mint(admin.ID)))
	})

	t.Run("deactivation outranks an otherwise valid token", func(t *testing.T) {
		victim := seedGateUser(t, st, "victim@example.com", true, false)
		tok := mint(victim.ID)
		require.Equal(t, http.StatusOK, do(protected, tok))

		off := false
		require.NoError(t, st.Users().AdminUpdate(context.Background(), victim.ID, domain.AdminUserUpdate{IsActive: &off}))
		require.Equal(t, http.StatusForbidden, do(protected, tok))
	})
}
