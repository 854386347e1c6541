package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/infrastructure/auth"
)

// ContextKey is the type for context keys set by middleware.
type ContextKey string

// ActorContextKey is the context key for the authenticated actor.
const ActorContextKey ContextKey = "actor"

// AuthMiddleware verifies the bearer token and places the resulting actor
// in the request context. Every tenancy decision downstream reads that
// actor.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor := domain.Actor{
				UserID:   claims.UserID,
				Email:    claims.Email,
				Role:     claims.Role,
				BankID:   claims.BankID,
				BranchID: claims.BranchID,
			}

			ctx := context.WithValue(r.Context(), ActorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEmployee rejects requests whose actor may not perform back-office
// mutations.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !actor.CanMutate() {
			http.Error(w, "insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext extracts the authenticated actor from context.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ActorContextKey).(domain.Actor)
	return actor, ok
}
