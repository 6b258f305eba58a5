package domain

import (
	"strings"
	"time"
)

// OTP purposes. A purpose scopes code uniqueness: issuing a new code
// invalidates prior unconsumed codes for the same (subject, purpose) only.
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

// Delivery methods for codes.
const (
	DeliveryEmail = "email"
	DeliverySMS   = "sms"
)

// SubjectKind tags what an OTP subject refers to.
type SubjectKind string

const (
	SubjectUser  SubjectKind = "user"  // an existing account, value is the user id
	SubjectEmail SubjectKind = "email" // a pre-account address, value is the raw email
)

// Subject identifies who a one-time code was issued for. Registration
// codes are issued before any user row exists, so the subject is the raw
// email; account-bound flows use the user id. The tag keeps the two code
// paths statically distinguishable.
type Subject struct {
	Kind  SubjectKind
	Value string
}

func UserSubject(userID string) Subject {
	return Subject{Kind: SubjectUser, Value: userID}
}

func EmailSubject(email string) Subject {
	return Subject{Kind: SubjectEmail, Value: strings.ToLower(strings.TrimSpace(email))}
}

// OTP is a single-use 6-digit verification code.
type OTP struct {
	ID             string
	Subject        Subject
	Code           string // 6 digits, uniform over [100000, 999999]
	Purpose        string
	DeliveryMethod string
	ExpiresAt      time.Time
	Consumed       bool
	CreatedAt      time.Time
}

// Valid reports whether the supplied code can consume this record.
func (o OTP) Valid(code string, now time.Time) bool {
	return o.Code == code && !o.Consumed && !now.After(o.ExpiresAt)
}

// ResetTicket is the short-lived proof that a password-reset OTP was
// verified. VerifyOTP mints one; ResetPassword consumes it. Only the
// SHA-256 fingerprint of the opaque token is persisted.
type ResetTicket struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
