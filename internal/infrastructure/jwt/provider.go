package jwtinfra

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/flexibill/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Provider signs and verifies HMAC JWTs carrying arbitrary claims.
type Provider struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key: %w", config.ErrMissing)
	}
	method, ok := jwt.GetSigningMethod(cfg.JWTAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q: %w", cfg.JWTAlgorithm, config.ErrMissing)
	}
	return &Provider{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    cfg.AccessTokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a copy of claims with an added exp. A ttl of zero or less
// falls back to the configured access token TTL.
func (p *Provider) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = p.ttl
	}
	toEncode := jwt.MapClaims{}
	maps.Copy(toEncode, claims)
	toEncode["exp"] = p.now().UTC().Add(ttl).Unix()

	return jwt.NewWithClaims(p.method, toEncode).SignedString(p.secret)
}

// Verify parses tokenStr and returns its claims when the signature,
// algorithm and expiry all check out.
func (p *Provider) Verify(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{p.method.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
