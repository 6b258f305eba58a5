package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestIssueGeneratesSixDigitCodes(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		otp, err := svc.Issue(ctx, domain.EmailSubject("alice@example.com"), domain.PurposeRegistration, "")
		require.NoError(t, err)
		require.Len(t, otp.Code, 6)
		require.GreaterOrEqual(t, otp.Code, "100000")
		require.LessOrEqual(t, otp.Code, "999999")
	}
}

func TestIssueInvalidatesPriorCodes(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()
	subject := domain.EmailSubject("alice@example.com")

	first, err := svc.Issue(ctx, subject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	second, err := svc.Issue(ctx, subject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	if first.Code != second.Code {
		require.ErrorIs(t, svc.Verify(ctx, subject, domain.PurposeRegistration, first.Code), ErrInvalidOTP)
	}
	require.NoError(t, svc.Verify(ctx, subject, domain.PurposeRegistration, second.Code))
}

func TestVerifyIsSingleUse(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()
	subject := domain.EmailSubject("bob@example.com")

	otp, err := svc.Issue(ctx, subject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, subject, domain.PurposeRegistration, otp.Code))
	require.ErrorIs(t, svc.Verify(ctx, subject, domain.PurposeRegistration, otp.Code), ErrInvalidOTP)
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()
	subject := domain.EmailSubject("carol@example.com")

	otp, err := svc.Issue(ctx, subject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	wrong := "000000"
	if otp.Code == wrong {
		wrong = "999999"
	}
	require.ErrorIs(t, svc.Verify(ctx, subject, domain.PurposeRegistration, wrong), ErrInvalidOTP)

	// The right code is still live after a failed attempt.
	require.NoError(t, svc.Verify(ctx, subject, domain.PurposeRegistration, otp.Code))
}

func TestVerifyRejectsExpiredCode(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &OTPService{
		Store: newTestStore(t),
		Now:   func() time.Time { return clock },
	}
	ctx := context.Background()
	subject := domain.UserSubject("01JD6R9GY2")

	otp, err := svc.Issue(ctx, subject, domain.PurposePasswordReset, "")
	require.NoError(t, err)

	clock = clock.Add(11 * time.Minute)
	require.ErrorIs(t, svc.Verify(ctx, subject, domain.PurposePasswordReset, otp.Code), ErrInvalidOTP)
}

func TestVerifyAtExactExpiryStillSucceeds(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &OTPService{
		Store: newTestStore(t),
		Now:   func() time.Time { return clock },
	}
	ctx := context.Background()
	subject := domain.EmailSubject("dave@example.com")

	otp, err := svc.Issue(ctx, subject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	clock = clock.Add(DefaultOTPTTL)
	require.NoError(t, svc.Verify(ctx, subject, domain.PurposeRegistration, otp.Code))
}

func TestCodesAreScopedBySubjectAndPurpose(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()

	regSubject := domain.EmailSubject("eve@example.com")
	resetSubject := domain.UserSubject("01JD6RABCD")

	reg, err := svc.Issue(ctx, regSubject, domain.PurposeRegistration, "")
	require.NoError(t, err)

	reset, err := svc.Issue(ctx, resetSubject, domain.PurposePasswordReset, "")
	require.NoError(t, err)

	// Neither issuance disturbed the other.
	require.NoError(t, svc.Verify(ctx, regSubject, domain.PurposeRegistration, reg.Code))
	require.NoError(t, svc.Verify(ctx, resetSubject, domain.PurposePasswordReset, reset.Code))
}

func TestVerifyWithWrongSubjectKindFails(t *testing.T) {
	svc := &OTPService{Store: newTestStore(t)}
	ctx := context.Background()

	otp, err := svc.Issue(ctx, domain.EmailSubject("frank@example.com"), domain.PurposeRegistration, "")
	require.NoError(t, err)

	// Same value, different kind. The tagged subject keeps these apart.
	require.ErrorIs(t,
		svc.Verify(ctx, domain.UserSubject("frank@example.com"), domain.PurposeRegistration, otp.Code),
		ErrInvalidOTP)
}
