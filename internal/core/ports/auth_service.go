package ports

import (
	"context"

	"github.com/numerisys/document-system/internal/core/domain"
)

// TokenClaims is the identity carried by a verified bearer credential.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenVerifier validates a bearer credential. Any failure (bad signature,
// malformed payload, expiry) yields domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// LoginThrottle limits repeated failed login attempts per email.
// Implementations decide the window and threshold; a nil throttle disables
// the check entirely.
type LoginThrottle interface {
	// Allow reports whether another login attempt for email is permitted.
	Allow(ctx context.Context, email string) (bool, error)
	// RecordFailure notes one failed attempt for email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login and self lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetSelf(ctx context.Context, userID string) (*domain.User, error)
}

// UserService is the admin-only user management surface.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
