package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey string

// userClaimsKey is the context key under which verified claims are stored.
const userClaimsKey = contextKey("userClaims")

// ClaimsFromContext returns the verified claims attached by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	return claims, ok
}

// Middleware creates a middleware for protecting routes. A missing
// Authorization header is rejected with 401; a present but unverifiable
// token with 403.
//
// Header parsing is deliberately permissive: the value is split on spaces
// and the second field is taken as the token, whatever the prefix says.
// "Bearer <token>" works, but so does any other single-word prefix.
func Middleware(ts *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized - No token provided", http.StatusUnauthorized)
				return
			}

			var tokenStr string
			if parts := strings.Split(authHeader, " "); len(parts) > 1 {
				tokenStr = parts[1]
			}

			claims, err := ts.Verify(tokenStr)
			if err != nil {
				log.Warn().Err(err).Msg("Token verification failed")
				http.Error(w, "Unauthorized - Invalid token", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
