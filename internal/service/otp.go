package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/mailer"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/idx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

// DefaultOTPTTL is how long an issued code stays redeemable.
const DefaultOTPTTL = 10 * time.Minute

var (
	ErrInvalidOTP = errors.New("invalid_otp")
)

// OTPService owns the one-time code ledger: issuing codes, enforcing the
// single-active-code rule and consuming codes exactly once.
type OTPService struct {
	Store  store.Store
	Mailer mailer.Mailer
	TTL    time.Duration

	// Now is injectable for expiry tests. Defaults to time.Now.
	Now func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultOTPTTL
}

// Issue generates a fresh 6-digit code for (subject, purpose), atomically
// retiring any unconsumed predecessors so at most one code is live per
// pair. The email argument is the delivery address; delivery failure is
// logged, never surfaced, so issuance cannot leak provider errors.
func (s *OTPService) Issue(ctx context.Context, subject domain.Subject, purpose, email string) (domain.OTP, error) {
	now := s.now()

	code, err := generateCode()
	if err != nil {
		return domain.OTP{}, err
	}

	otp := domain.OTP{
		ID:             idx.New().String(),
		Subject:        subject,
		Code:           code,
		Purpose:        purpose,
		DeliveryMethod: domain.DeliveryEmail,
		ExpiresAt:      now.Add(s.ttl()),
		CreatedAt:      now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OTPs().InvalidateUnconsumed(ctx, subject, purpose); err != nil {
			return err
		}
		return tx.OTPs().Insert(ctx, otp)
	})
	if err != nil {
		return domain.OTP{}, err
	}

	s.deliver(ctx, email, purpose, code)
	return otp, nil
}

// Verify consumes the live code for (subject, purpose). A wrong, expired
// or already-consumed code fails with ErrInvalidOTP; the caller cannot
// tell which, so the response never confirms whether a code exists.
func (s *OTPService) Verify(ctx context.Context, subject domain.Subject, purpose, code string) error {
	now := s.now()

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		otp, err := tx.OTPs().FindUnconsumed(ctx, subject, purpose, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidOTP
			}
			return err
		}
		if !otp.Valid(code, now) {
			return ErrInvalidOTP
		}
		return tx.OTPs().MarkConsumed(ctx, otp.ID)
	})
}

func (s *OTPService) deliver(ctx context.Context, email, purpose, code string) {
	if s.Mailer == nil || email == "" {
		return
	}

	subject := "Your verification code"
	if purpose == domain.PurposePasswordReset {
		subject = "Your password reset code"
	}
	body := fmt.Sprintf("Your code is %s. It expires in %d minutes.", code, int(s.ttl().Minutes()))

	l := slogx.FromContext(ctx)

	// Detach from the request context so in-flight sends survive the
	// response being written.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.Mailer.Send(sendCtx, mailer.Message{To: email, Subject: subject, Body: body}); err != nil {
			l.Warn("otp delivery failed", "purpose", purpose, "err", err)
		}
	}()
}

// generateCode draws a uniform 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
