package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/flexibill/internal/domain"
	jwtinfra "github.com/flexibill/internal/infrastructure/jwt"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth returns middleware that validates the Bearer JWT and injects its
// claims into the request context. Tokens without a mobile_number claim
// are rejected.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, tokenStr, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSONError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			if m, _ := claims[domain.ClaimMobileNumber].(string); m == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeJSONError(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	c, ok := ctx.Value(claimsKey).(jwt.MapClaims)
	return c, ok
}

// MobileNumberFromContext returns the verified mobile number of the caller.
func MobileNumberFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	m, _ := c[domain.ClaimMobileNumber].(string)
	return m, m != ""
}

// WithClaims returns ctx carrying claims, as Auth would after verifying a token.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
