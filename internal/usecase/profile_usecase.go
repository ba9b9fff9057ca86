package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"craftsmatch-backend/internal/domain"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/pkg/cache"
	"craftsmatch-backend/pkg/logger"
)

const roleCacheTTL = time.Minute

type ProfileUsecase struct {
	repo  domain.UserRepository
	cache cache.CacheService
}

func NewProfileUsecase(repo domain.UserRepository, cache cache.CacheService) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, cache: cache}
}

type OnboardingInput struct {
	Role        string `json:"role"`
	Country     string `json:"country"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

// GetProfile returns the stored profile, or a bare one built from the token
// identity when the user has not onboarded yet.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID, email string) (*domain.User, error) {
	user, err := u.repo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.User{ID: userID, Email: email}, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *ProfileUsecase) CompleteOnboarding(ctx context.Context, userID, email string, in OnboardingInput) (*domain.User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != domain.RoleCraftsman && role != domain.RoleBuilder {
		return nil, fmt.Errorf("%w: role must be one of %s", domain.ErrInvalidInput, strings.Join(domain.OnboardingRoles, ", "))
	}
	country := shipping.NormalizeCountry(in.Country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", domain.ErrInvalidInput)
	}

	user, err := u.repo.GetByID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{ID: userID}
	case err != nil:
		return nil, err
	case user.IsOnboarded() && user.Role != role:
		return nil, fmt.Errorf("%w: already onboarded as %s", domain.ErrConflict, user.Role)
	}

	// cached products embed the seller's name and origin country
	sellerChanged := role == domain.RoleCraftsman && user.IsOnboarded() &&
		(user.Country != country || user.DisplayName != strings.TrimSpace(in.DisplayName))

	if email != "" {
		user.Email = email
	}
	user.Role = role
	user.Country = country
	user.DisplayName = strings.TrimSpace(in.DisplayName)
	user.Bio = strings.TrimSpace(in.Bio)

	if err := u.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	u.cache.Delete(roleKey(userID))
	if sellerChanged {
		u.cache.DeletePrefix(cache.ProductKeyPrefix)
	}

	logger.WithContext(ctx).Info().
		Str("user_id", userID).
		Str("role", role).
		Str("country", country).
		Msg("user onboarded")
	return user, nil
}

// ResolveRole prefers the stored role over the token claim so a freshly
// onboarded user does not have to wait for a new token.
func (u *ProfileUsecase) ResolveRole(ctx context.Context, userID, tokenRole string) (string, error) {
	if val, found := u.cache.Get(roleKey(userID)); found {
		return val.(string), nil
	}
	role := tokenRole
	user, err := u.repo.GetByID(ctx, userID)
	switch {
	case err == nil && user.Role != "":
		role = user.Role
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return "", err
	}
	u.cache.Set(roleKey(userID), role, roleCacheTTL)
	return role, nil
}

func roleKey(userID string) string { return "user:role:" + userID }
