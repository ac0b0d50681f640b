package ports

import (
	"context"

	"github.com/blog-system/blog-api/internal/core/domain"
)

// RegisterInput carries registration details.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService defines account operations. Login is exposed to callers but
// not routed over HTTP.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)

	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
}
