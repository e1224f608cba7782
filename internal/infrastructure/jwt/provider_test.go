package jwtinfra

import (
	"errors"
	"testing"
	"time"

	"github.com/flexibill/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, fixed time.Time) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		SecretKey:      "test-secret",
		JWTAlgorithm:   "HS256",
		AccessTokenTTL: 30 * 24 * time.Hour,
	})
	require.NoError(t, err)
	p.now = func() time.Time { return fixed }
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTAlgorithm: "HS256"})
	assert.True(t, errors.Is(err, config.ErrMissing))
}

func TestNewProvider_RejectsRSA(t *testing.T) {
	_, err := NewProvider(&config.Config{SecretKey: "s", JWTAlgorithm: "RS256"})
	assert.True(t, errors.Is(err, config.ErrMissing))
}

func TestIssue_AddsExpFromDefaultTTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newTestProvider(t, now)

	tok, err := p.Issue(map[string]any{"mobile_number": "9876543210"}, 0)
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Len(t, claims, 2)
	assert.Equal(t, "9876543210", claims["mobile_number"])
	assert.Equal(t, float64(now.Add(30*24*time.Hour).Unix()), claims["exp"])
}

func TestIssue_TTLOverride(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newTestProvider(t, now)

	tok, err := p.Issue(map[string]any{"mobile_number": "1"}, 15*time.Minute)
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute).Unix(), exp.Unix())
}

func TestIssue_DoesNotMutateInput(t *testing.T) {
	p := newTestProvider(t, time.Now())
	in := map[string]any{"mobile_number": "1"}

	_, err := p.Issue(in, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"mobile_number": "1"}, in)
}

func TestIssue_DeterministicForSameInstant(t *testing.T) {
	p := newTestProvider(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	a, err := p.Issue(map[string]any{"mobile_number": "1"}, 0)
	require.NoError(t, err)
	b, err := p.Issue(map[string]any{"mobile_number": "1"}, 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	p := newTestProvider(t, issuedAt)
	tok, err := p.Issue(map[string]any{"mobile_number": "1"}, time.Hour)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t, time.Now())
	tok, err := p.Issue(map[string]any{"mobile_number": "1"}, 0)
	require.NoError(t, err)

	other, err := NewProvider(&config.Config{SecretKey: "other", JWTAlgorithm: "HS256", AccessTokenTTL: time.Hour})
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_RejectsOtherHMACAlgorithm(t *testing.T) {
	p := newTestProvider(t, time.Now())
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"mobile_number": "1",
		"exp":           time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, time.Now())
	_, err := p.Verify("not-a-real-token")
	assert.Error(t, err)
}
