package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
	"github.com/summitlog/summitlog/pkg/jwtx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

func contextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// AuthGate resolves the caller's identity for protected routes. The
// chain is: bearer extract, token verify (401), user lookup (404),
// active check (403), then optionally admin check (403). Each step
// short-circuits; ownership checks stay in the handlers.
type AuthGate struct {
	Signer *jwtx.Signer
	Store  store.Store
}

// RequireUser authenticates the request and loads the account into the
// request context. The lookup runs on every request, so disabling or
// deleting an account takes effect immediately regardless of any tokens
// still in the wild.
func (g *AuthGate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := httpx.BearerToken(r)
		if token == "" {
			ErrUnauthenticated.WriteError(w)
			return
		}

		userID, err := g.Signer.Validate(token)
		if err != nil {
			ErrUnauthenticated.WriteError(w)
			return
		}

		user, err := g.Store.Users().GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				ErrNotFound.WriteError(w)
				return
			}
			slogx.FromContext(r.Context()).Error("auth gate user lookup failed", "user_id", userID, "err", err)
			ErrServerError.WriteError(w)
			return
		}

		if !user.IsActive {
			ErrAccountDisabled.WriteError(w)
			return
		}

		ctx := httpx.ContextWithUserID(r.Context(), user.ID)
		ctx = contextWithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers the admin check on top of RequireUser; it must run
// after it in the chain.
func (g *AuthGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			ErrUnauthenticated.WriteError(w)
			return
		}
		if !user.IsAdmin {
			ErrForbidden.WriteError(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
