package ports

import (
	"context"

	"github.com/blog-system/blog-api/internal/core/domain"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string
	Content string
	Author  string
}

// CreatePostInput is PostInput plus the optional client idempotency key.
type CreatePostInput struct {
	PostInput
	IdempotencyKey string
}

// CreatePostResult is returned by CreatePost.
type CreatePostResult struct {
	Post *domain.Post
	// Replayed is true when the idempotency key matched an earlier create.
	Replayed bool
}

// PostService defines use-case operations for posts.
type PostService interface {
	GetAllPosts(ctx context.Context) ([]*domain.Post, error)
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*CreatePostResult, error)
	UpdatePost(ctx context.Context, id int64, input PostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
	SearchByTitle(ctx context.Context, keyword string) ([]*domain.Post, error)
	GetPostsByAuthor(ctx context.Context, author string) ([]*domain.Post, error)
}
