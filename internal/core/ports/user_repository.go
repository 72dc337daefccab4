package ports

import (
	"context"

	"github.com/numerisys/document-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users without their password hashes, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
