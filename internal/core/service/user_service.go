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

var _ ports.UserService = (*UserService)(nil)

// UserService implements registration, email checks and credential checks.
type UserService struct {
	repo    ports.UserRepository
	encoder PasswordEncoder
	now     func() time.Time
	logger  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, encoder PasswordEncoder, logger zerolog.Logger) *UserService {
	if encoder == nil {
		encoder = PlainTextEncoder{}
	}
	return &UserService{repo: repo, encoder: encoder, now: time.Now, logger: logger}
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	user, err := domain.NewUser(input.Name, input.Email, input.Password, s.now())
	if err != nil {
		return nil, err
	}
	if user.Password, err = s.encoder.Encode(input.Password); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// Login returns the user whose email and password match. Unknown email and
// wrong password yield the same ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.encoder.Matches(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return nil, domain.UserNotFound(id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return nil, domain.UserEmailNotFound(email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// Save persists user as given; the password is stored without re-encoding.
func (s *UserService) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicate):
			return nil, domain.ErrEmailTaken
		case errors.Is(err, ports.ErrNoRecord):
			return nil, domain.UserNotFound(user.ID)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNoRecord) {
			return domain.UserNotFound(id)
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
