package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-system/blog-api/internal/core/domain"
	"github.com/blog-system/blog-api/internal/core/ports"
)

// IdempotencyStore tracks which post a client idempotency key created (Redis).
// Reserve claims a fresh key before the insert so concurrent requests with the
// same key cannot both create a post; Lookup reports a reserved but unfinished
// key as not found.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (reserved bool, err error)
	Lookup(ctx context.Context, key string) (postID int64, found bool, err error)
	Remember(ctx context.Context, key string, postID int64) error
	Release(ctx context.Context, key string) error
}

type noopIdempotencyStore struct{}

func (noopIdempotencyStore) Reserve(context.Context, string) (bool, error)       { return true, nil }
func (noopIdempotencyStore) Lookup(context.Context, string) (int64, bool, error) { return 0, false, nil }
func (noopIdempotencyStore) Remember(context.Context, string, int64) error       { return nil }
func (noopIdempotencyStore) Release(context.Context, string) error               { return nil }

var _ ports.PostService = (*PostService)(nil)

type PostService struct {
	repo        ports.PostRepository
	idempotency IdempotencyStore
	now         func() time.Time
	logger      zerolog.Logger
}

// PostServiceOption customises a PostService.
type PostServiceOption func(*PostService)

// WithIdempotencyStore enables replay protection for CreatePost.
func WithIdempotencyStore(store IdempotencyStore) PostServiceOption {
	return func(s *PostService) {
		if store != nil {
			s.idempotency = store
		}
	}
}

// WithClock overrides the clock used to date new posts.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostService) { s.now = now }
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger, opts ...PostServiceOption) *PostService {
	s := &PostService{
		repo:        repo,
		idempotency: noopIdempotencyStore{},
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllPosts returns every post, newest first.
func (s *PostService) GetAllPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return nil, domain.PostNotFound(id)
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// CreatePost persists a new post dated today. With an idempotency key, a
// retry of a finished request returns the post it created without side
// effects, and a retry while the first request is still running is rejected
// with domain.ErrRequestInProgress.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
	post, err := domain.NewPost(input.Title, input.Content, input.Author, s.now())
	if err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	if key != "" {
		existing, err := s.claim(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.CreatePostResult{Post: existing, Replayed: true}, nil
		}
	}

	saved, err := s.repo.Save(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		if key != "" {
			if rerr := s.idempotency.Release(ctx, key); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	if key != "" {
		if err := s.idempotency.Remember(ctx, key, saved.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to remember idempotency key")
		}
	}

	s.logger.Info().Int64("post_id", saved.ID).Str("author", saved.Author).Msg("post created")
	return &ports.CreatePostResult{Post: saved}, nil
}

// claim reserves key for the current request. When an earlier request already
// holds it, claim returns that request's post, or nil if the post has since
// been deleted so a new one is created under the same key. An unreachable
// store degrades to creating without protection.
func (s *PostService) claim(ctx context.Context, key string) (*domain.Post, error) {
	reserved, err := s.idempotency.Reserve(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return nil, nil
	}
	if reserved {
		return nil, nil
	}

	id, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil, nil
	}
	if !found {
		return nil, domain.ErrRequestInProgress
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ports.ErrNoRecord) {
			s.logger.Warn().Err(err).Int64("post_id", id).Msg("idempotent replay lookup failed")
		}
		return nil, nil
	}

	s.logger.Info().Str("idempotency_key", key).Int64("post_id", id).Msg("idempotent replay")
	return post, nil
}

// UpdatePost overwrites title, content and author of an existing post.
// The read and the write are separate statements; concurrent updates to the
// same post are last-writer-wins.
func (s *PostService) UpdatePost(ctx context.Context, id int64, input ports.PostInput) (*domain.Post, error) {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := post.Update(input.Title, input.Content, input.Author); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, post)
	if err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return nil, domain.PostNotFound(id)
		}
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	s.logger.Info().Int64("post_id", id).Msg("post updated")
	return saved, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if _, err := s.GetPostByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return domain.PostNotFound(id)
		}
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	s.logger.Info().Int64("post_id", id).Msg("post deleted")
	return nil
}

func (s *PostService) SearchByTitle(ctx context.Context, keyword string) ([]*domain.Post, error) {
	posts, err := s.repo.FindByTitleContaining(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPostsByAuthor(ctx context.Context, author string) ([]*domain.Post, error) {
	posts, err := s.repo.FindByAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("posts by author: %w", err)
	}
	return posts, nil
}
