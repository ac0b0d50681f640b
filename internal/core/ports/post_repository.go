package ports

import (
	"context"

	"github.com/blog-system/blog-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// FindAll returns every post, newest CreatedAt first.
	FindAll(ctx context.Context) ([]*domain.Post, error)
	// FindByID returns ErrNoRecord when no post has the id.
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// Save inserts when p.ID is zero and updates otherwise. The returned
	// post carries the assigned id. Updating a missing row yields ErrNoRecord.
	Save(ctx context.Context, p *domain.Post) (*domain.Post, error)
	// DeleteByID returns ErrNoRecord when nothing was removed.
	DeleteByID(ctx context.Context, id int64) error
	// FindByTitleContaining matches keyword literally and case-sensitively.
	FindByTitleContaining(ctx context.Context, keyword string) ([]*domain.Post, error)
	FindByAuthor(ctx context.Context, author string) ([]*domain.Post, error)
}
