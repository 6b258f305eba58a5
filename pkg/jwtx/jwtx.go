package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
// Short-lived for security - typical range is 15m to 1h.
const DefaultAccessTokenTTL = 30 * time.Minute

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
)

// Claims are the access-token claims. We only carry registered claims;
// everything else (active, admin, tier) is looked up per request so a
// stale token can never outrank the database.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer mints and validates HS256 bearer tokens with a single
// process-wide secret. Stateless: there is no revocation list, a token
// is good until its encoded expiry.
type Signer struct {
	secret []byte
	issuer string
}

func NewSigner(secret []byte, issuer string) *Signer {
	return &Signer{secret: secret, issuer: issuer}
}

// Mint encodes {sub, iat, exp} for the subject with the given ttl.
func (s *Signer) Mint(subject string, ttl time.Duration) (string, error) {
	return s.MintAt(subject, ttl, time.Now().UTC())
}

// MintAt is Mint with an explicit issue time, used by tests to simulate
// clock advance.
func (s *Signer) MintAt(subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies signature, issuer and expiry and returns the subject.
// It does not confirm the referenced user still exists or is active;
// that is layered on top by the request middleware.
func (s *Signer) Validate(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil && parsed.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "", ErrIssuer
	default:
		return "", ErrMalformed
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
