package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/pkg/cryptox"
	"github.com/summitlog/summitlog/pkg/idx"
	"github.com/summitlog/summitlog/pkg/jwtx"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	st := newTestStore(t)
	return &AuthService{
		Store:  st,
		OTP:    &OTPService{Store: st},
		Signer: jwtx.NewSigner([]byte("test-secret"), "summitlog-test"),
	}
}

func seedUser(t *testing.T, s *AuthService, email, password string, active bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	u := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		PasswordHash:     hash,
		FullName:         "Seed User",
		IsActive:         active,
		EmailVerified:    true,
		SubscriptionTier: domain.TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, s.Store.Users().CreateUser(context.Background(), u))
	return u
}

func TestRegistrationFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestRegistrationOTP(ctx, "Alice@Example.com"))

	// The issued code is bound to the lowercased address.
	otp, err := svc.OTP.Issue(ctx, domain.EmailSubject("alice@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)

	user, token, err := svc.Register(ctx, RegisterInput{
		Email:    "Alice@Example.com",
		Password: "correct-horse-battery",
		FullName: "Alice",
		Code:     otp.Code,
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, user.EmailVerified)
	require.True(t, user.IsActive)

	sub, err := svc.Signer.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, sub)

	// The registration code is consumed; replaying the registration fails.
	_, _, err = svc.Register(ctx, RegisterInput{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
		Code:     otp.Code,
	})
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRequestRegistrationOTPRejectsTakenEmail(t *testing.T) {
	svc := newAuthService(t)
	seedUser(t, svc, "taken@example.com", "password123", true)

	require.ErrorIs(t, svc.RequestRegistrationOTP(context.Background(), "taken@example.com"), ErrEmailTaken)
}

func TestRegisterRejectsWrongCode(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	otp, err := svc.OTP.Issue(ctx, domain.EmailSubject("bob@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)

	wrong := "000000"
	if otp.Code == wrong {
		wrong = "999999"
	}
	_, _, err = svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "password123", Code: wrong})
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "short@example.com",
		Password: "short",
		Code:     "123456",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	seedUser(t, svc, "carol@example.com", "password123", true)

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "Carol@Example.com", "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, errPassword := svc.Login(ctx, "carol@example.com", "wrong-password")
		_, _, errEmail := svc.Login(ctx, "nobody@example.com", "password123")
		require.ErrorIs(t, errPassword, ErrInvalidCredentials)
		require.ErrorIs(t, errEmail, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		seedUser(t, svc, "disabled@example.com", "password123", false)
		_, _, err := svc.Login(ctx, "disabled@example.com", "password123")
		require.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "dave@example.com", "old-password", true)

	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "not-the-password", "new-password"), ErrInvalidCredentials)
	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "old-password", "tiny"), ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-password", "new-password"))

	_, _, err := svc.Login(ctx, "dave@example.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "dave@example.com", "new-password")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "eve@example.com", "old-password", true)

	require.NoError(t, svc.ForgotPassword(ctx, "eve@example.com"))

	otp, err := svc.OTP.Issue(ctx, domain.UserSubject(user.ID), domain.PurposePasswordReset, "")
	require.NoError(t, err)

	ticket, err := svc.VerifyResetOTP(ctx, "eve@example.com", otp.Code)
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	require.NoError(t, svc.ResetPassword(ctx, ticket, "brand-new-password"))

	_, _, err = svc.Login(ctx, "eve@example.com", "brand-new-password")
	require.NoError(t, err)

	// The ticket is single-use.
	require.ErrorIs(t, svc.ResetPassword(ctx, ticket, "another-password"), ErrInvalidResetTicket)
}

func TestResetPasswordRequiresTicket(t *testing.T) {
	svc := newAuthService(t)
	seedUser(t, svc, "frank@example.com", "old-password", true)

	// Skipping the verify step with a guessed ticket gets you nowhere.
	err := svc.ResetPassword(context.Background(), "guessed-ticket-value", "new-password-1")
	require.ErrorIs(t, err, ErrInvalidResetTicket)
}

func TestResetTicketExpires(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := newTestStore(t)
	svc := &AuthService{
		Store:  st,
		OTP:    &OTPService{Store: st, Now: func() time.Time { return clock }},
		Signer: jwtx.NewSigner([]byte("test-secret"), "summitlog-test"),
		Now:    func() time.Time { return clock },
	}
	user := seedUser(t, svc, "grace@example.com", "old-password", true)
	ctx := context.Background()

	otp, err := svc.OTP.Issue(ctx, domain.UserSubject(user.ID), domain.PurposePasswordReset, "")
	require.NoError(t, err)

	ticket, err := svc.VerifyResetOTP(ctx, "grace@example.com", otp.Code)
	require.NoError(t, err)

	clock = clock.Add(16 * time.Minute)
	require.ErrorIs(t, svc.ResetPassword(ctx, ticket, "new-password-1"), ErrInvalidResetTicket)
}

func TestForgotPasswordIsSilentForUnknownEmail(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.ForgotPassword(context.Background(), "unknown@example.com"))
}

func TestVerifyResetOTPUnknownEmail(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.VerifyResetOTP(context.Background(), "unknown@example.com", "123456")
	require.ErrorIs(t, err, ErrInvalidOTP)
}
