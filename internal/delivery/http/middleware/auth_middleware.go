package middleware

import (
	"context"
	"net/http"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

// AuthMiddleware verifies the bearer token (header or accessToken cookie)
// and stores the caller as *domain.User in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.TokenFromRequest(r) == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := utils.ExtractClaims(r)
		if err != nil {
			logger.WithContext(r.Context()).Debug().Err(err).Msg("token rejected")
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		// Identity comes from the token; the role is re-checked by RequireRole.
		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		reqLogger := logger.WithUserID(*logger.WithContext(r.Context()), user.ID)
		ctx := logger.NewContext(r.Context(), &reqLogger)
		ctx = context.WithValue(ctx, domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated caller, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(domain.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
