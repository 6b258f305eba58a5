package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/jwtx"
)

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st := newGateStore(t)
	signer := jwtx.NewSigner([]byte("router-secret"), "summitlog-test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	otp := &service.OTPService{Store: st}
	auth := &service.AuthService{Store: st, OTP: otp, Signer: signer, AccessTTL: 30 * time.Minute}

	r := NewRouter(signer, "test", 30*time.Minute, st, logger)
	r.AuthService = auth
	r.UserService = &service.UserService{Store: st}
	r.AchievementService = &service.AchievementService{Store: st}
	r.SkillService = &service.SkillService{Store: st}
	r.GoalService = &service.GoalService{Store: st}
	r.CategoryService = &service.CategoryService{Store: st}
	r.AdminService = &service.AdminService{Store: st}
	r.ApplyRoutes()
	return r, st
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegistrationAndProfileFlow(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	rec := doJSON(t, r, http.MethodPost, "/v1/auth/register/request-otp", "", map[string]string{
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	// Pull the issued code straight from the ledger, as a mail
	// integration would have delivered it.
	otp, err := r.AuthService.OTP.Issue(ctx, domain.EmailSubject("alice@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)

	rec = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":     "alice@example.com",
		"password":  "password-123",
		"full_name": "Alice",
		"otp_code":  otp.Code,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, "alice@example.com", tok.User.Email)

	rec = doJSON(t, r, http.MethodGet, "/v1/auth/me", tok.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/v1/auth/me", tok.AccessToken, map[string]string{
		"bio": "climbing things",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "climbing things", me.Bio)

	// The allow-list keeps privileged fields out of the profile path.
	rec = doJSON(t, r, http.MethodPut, "/v1/auth/me", tok.AccessToken, map[string]any{
		"is_admin": true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, user.IsAdmin)
}

func TestAchievementEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	otp, err := r.AuthService.OTP.Issue(ctx, domain.EmailSubject("bob@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)
	_, token, err := r.AuthService.Register(ctx, service.RegisterInput{
		Email:    "bob@example.com",
		Password: "password-123",
		Code:     otp.Code,
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/v1/achievements", token, map[string]any{
		"title":            "Shipped the thing",
		"importance_level": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created AchievementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodGet, "/v1/achievements", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []AchievementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doJSON(t, r, http.MethodPut, "/v1/achievements/"+created.ID, token, map[string]any{
		"is_public": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/v1/achievements/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/achievements/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	otp, err := r.AuthService.OTP.Issue(ctx, domain.EmailSubject("carol@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)
	user, token, err := r.AuthService.Register(ctx, service.RegisterInput{
		Email:    "carol@example.com",
		Password: "password-123",
		Code:     otp.Code,
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/v1/admin/users", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	promote := true
	require.NoError(t, st.Users().AdminUpdate(ctx, user.ID, domain.AdminUserUpdate{IsAdmin: &promote}))

	rec = doJSON(t, r, http.MethodGet, "/v1/admin/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/admin/stats/overview", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/v1/admin/users/"+user.ID, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
