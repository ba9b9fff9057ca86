package middleware

import (
	"context"
	"net/http"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

type RoleResolver interface {
	ResolveRole(ctx context.Context, userID, tokenRole string) (string, error)
}

// RequireRole ensures the authenticated user holds one of roles.
// MUST be used AFTER AuthMiddleware.
func RequireRole(resolver RoleResolver, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No user found in context")
				return
			}

			role, err := resolver.ResolveRole(r.Context(), user.ID, user.Role)
			if err != nil {
				logger.WithContext(r.Context()).Error().Err(err).Msg("resolve role failed")
				utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			for _, allowed := range roles {
				if role == allowed || role == domain.RoleAdmin {
					resolved := *user
					resolved.Role = role
					ctx := context.WithValue(r.Context(), domain.UserContextKey, &resolved)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			utils.WriteError(w, http.StatusForbidden, "Forbidden: requires role "+roles[0])
		})
	}
}
