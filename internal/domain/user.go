package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

type User struct {
	ID          string    `json:"id"` // subject issued by the identity provider
	Email       string    `json:"email"`
	Role        string    `json:"role"` // craftsman, builder, admin; empty until onboarded
	DisplayName string    `json:"displayName"`
	Country     string    `json:"country"` // ISO-3166 alpha-2
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) IsOnboarded() bool {
	return u.Role != "" && u.Country != ""
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Upsert(ctx context.Context, user *User) error
}
