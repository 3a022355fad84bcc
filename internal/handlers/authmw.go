package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/emintt/coffee-shop-backend-23/internal/auth"
	"github.com/emintt/coffee-shop-backend-23/internal/errs"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the authenticated caller's claims, or nil for
// an anonymous caller.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid token: missing tokens are
// unauthorized, presented-but-invalid tokens are forbidden.
func RequireAuth(tm *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, errs.Unauthorized("missing authorization"))
			return
		}
		claims, err := tm.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// OptionalAuth degrades to the anonymous view when no token is presented;
// a token that is presented must still be valid.
func OptionalAuth(tm *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next(w, r)
			return
		}
		claims, err := tm.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// RequireRole gates a handler to an allow-set of roles. It assumes
// RequireAuth already ran.
func RequireRole(next http.HandlerFunc, allowed ...int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, errs.Unauthorized("missing authorization"))
			return
		}
		for _, role := range allowed {
			if claims.Role == role {
				next(w, r)
				return
			}
		}
		writeError(w, errs.Forbidden("insufficient permissions"))
	}
}
