package repository

import (
	"context"

	"github.com/ErlanBelekov/blog-api/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns a duplicate-email error when the
	// address is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindIDsByName returns the ids of users whose first or last name contains
	// term, case-insensitively.
	FindIDsByName(ctx context.Context, term string) ([]string, error)
}
