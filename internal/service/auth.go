package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/cryptox"
	"github.com/summitlog/summitlog/pkg/idx"
	"github.com/summitlog/summitlog/pkg/jwtx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

// DefaultResetTicketTTL bounds the window between verifying a reset code
// and actually setting the new password.
const DefaultResetTicketTTL = 15 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrWeakPassword       = errors.New("weak_password")
	ErrInvalidResetTicket = errors.New("invalid_reset_ticket")
)

// AuthService implements registration, login and the password lifecycle.
// Identity proofs (codes, tickets) are delegated to OTPService and the
// reset ticket store; session minting to the jwtx signer.
type AuthService struct {
	Store     store.Store
	OTP       *OTPService
	Signer    *jwtx.Signer
	AccessTTL time.Duration
	TicketTTL time.Duration

	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) ticketTTL() time.Duration {
	if s.TicketTTL > 0 {
		return s.TicketTTL
	}
	return DefaultResetTicketTTL
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPasswordPolicy(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// RequestRegistrationOTP issues a registration code to an address with no
// account yet. A taken address is reported as a conflict; registration is
// the one flow where existence is not a secret, the register call itself
// would reveal it.
func (s *AuthService) RequestRegistrationOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	_, err = s.OTP.Issue(ctx, domain.EmailSubject(email), domain.PurposeRegistration, email)
	return err
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Code     string
}

// Register consumes the registration code for the email and creates the
// account with the address pre-verified. Returns the new user and a
// freshly minted session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	email := normalizeEmail(in.Email)

	if err := checkPasswordPolicy(in.Password); err != nil {
		return domain.User{}, "", err
	}

	if err := s.OTP.Verify(ctx, domain.EmailSubject(email), domain.PurposeRegistration, in.Code); err != nil {
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	now := s.now()
	user := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		PasswordHash:     hash,
		FullName:         strings.TrimSpace(in.FullName),
		IsActive:         true,
		EmailVerified:    true,
		SubscriptionTier: domain.TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	token, err := s.Signer.MintAt(user.ID, s.accessTTL(), now)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login exchanges credentials for a session token. The error never says
// whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.User{}, "", ErrAccountDisabled
	}

	token, err := s.Signer.MintAt(user.ID, s.accessTTL(), s.now())
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// MintToken issues a session token for an already-authenticated user.
// Used by the OAuth callback, where identity was proven upstream.
func (s *AuthService) MintToken(userID string) (string, error) {
	return s.Signer.MintAt(userID, s.accessTTL(), s.now())
}

// ChangePassword rotates the password of a logged-in user after
// re-proving the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}
	if err := checkPasswordPolicy(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// ForgotPassword issues a reset code when the address belongs to an
// active account. It succeeds either way; the caller's response must not
// reveal whether the address exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Info("password reset requested for unknown address")
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	_, err = s.OTP.Issue(ctx, domain.UserSubject(user.ID), domain.PurposePasswordReset, user.Email)
	return err
}

// VerifyResetOTP consumes a password-reset code and mints a single-use
// reset ticket. The opaque ticket token is returned once; only its
// fingerprint is stored. ResetPassword requires the ticket, so a caller
// can never skip straight to the reset step.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidOTP
		}
		return "", err
	}

	if err := s.OTP.Verify(ctx, domain.UserSubject(user.ID), domain.PurposePasswordReset, code); err != nil {
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := s.now()
	ticket := domain.ResetTicket{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(s.ticketTTL()),
		CreatedAt: now,
	}
	if err := s.Store.ResetTickets().Create(ctx, ticket); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset ticket and sets the new password
// atomically, so a ticket can never authorize two resets.
func (s *AuthService) ResetPassword(ctx context.Context, ticketToken, newPassword string) error {
	if err := checkPasswordPolicy(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := s.now()
	fp := cryptox.FingerprintToken(strings.TrimSpace(ticketToken))

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		ticket, err := tx.ResetTickets().GetByTokenHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetTicket
			}
			return err
		}
		if ticket.Used || now.After(ticket.ExpiresAt) {
			return ErrInvalidResetTicket
		}

		if err := tx.ResetTickets().MarkUsed(ctx, ticket.ID); err != nil {
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, ticket.UserID, hash)
	})
}
