package port

import (
	"context"

	"go-taskbot/internal/pkg/auth/application/domain"
)

// UserRepository persists user accounts. Lookups return nil when no
// user matches.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, name *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
