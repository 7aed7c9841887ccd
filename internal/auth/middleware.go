package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/utils"
)

type contextKey string

const claimsKey contextKey = "sessionClaims"

// Middleware authenticates requests with a Bearer session token and places
// the claims on the request context.
func Middleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
				return
			}

			claims, err := ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session claims, if any.
func SessionFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// RequireRole wraps a handler and rejects callers without one of the roles.
func RequireRole(next http.HandlerFunc, roles ...models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		if !ok {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				next(w, r)
				return
			}
		}
		utils.SendErrorResponse(w, http.StatusForbidden, "insufficient privileges")
	}
}
