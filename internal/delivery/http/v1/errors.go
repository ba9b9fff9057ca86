package v1

import (
	"errors"
	"net/http"

	"craftsmatch-backend/internal/delivery/http/middleware"
	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

// writeUsecaseError maps domain errors onto HTTP status codes. Unknown
// errors are logged and answered with a generic 500.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, shipping.ErrShippingUnavailable):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		utils.WriteError(w, status, "Internal server error")
		return
	}
	utils.WriteError(w, status, err.Error())
}

// currentUser answers 401 when the request carries no authenticated user.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}
