package ports

import (
	"context"

	"github.com/blog-system/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts when u.ID is zero and updates otherwise. A second user
	// with an existing email yields ErrDuplicate.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
}
