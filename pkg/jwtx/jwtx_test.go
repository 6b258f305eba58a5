package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMintAndValidate(t *testing.T) {
	t.Parallel()

	s := NewSigner(testSecret, "summitlog")

	token, err := s.Mint("42", 30*time.Minute)
	require.NoError(t, err)

	subject, err := s.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "42", subject)
}

func TestValidateExpired(t *testing.T) {
	t.Parallel()

	s := NewSigner(testSecret, "summitlog")

	// Minted 31 minutes in the past with a 30 minute ttl.
	token, err := s.MintAt("42", 30*time.Minute, time.Now().UTC().Add(-31*time.Minute))
	require.NoError(t, err)

	_, err = s.Validate(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	minter := NewSigner(testSecret, "summitlog")
	verifier := NewSigner([]byte("a completely different secret!!!"), "summitlog")

	token, err := minter.Mint("42", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	minter := NewSigner(testSecret, "someone-else")
	verifier := NewSigner(testSecret, "summitlog")

	token, err := minter.Mint("42", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := NewSigner(testSecret, "summitlog")

	_, err := s.Validate("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = s.Validate("")
	require.ErrorIs(t, err, ErrMalformed)
}
