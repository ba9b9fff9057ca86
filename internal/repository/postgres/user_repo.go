package pgrepo

import (
	"context"

	"craftsmatch-backend/internal/domain"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id::text, email, COALESCE(role, ''), COALESCE(display_name, ''),
	COALESCE(country, ''), COALESCE(bio, ''), created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Email, &u.Role, &u.DisplayName, &u.Country, &u.Bio, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO users (id, email, role, display_name, country, bio)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			display_name = EXCLUDED.display_name,
			country = EXCLUDED.country,
			bio = EXCLUDED.bio,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.Role, user.DisplayName, user.Country, user.Bio,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}
