package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"community_board/internal/model"
	"community_board/internal/repository"
)

// UserService exposes account reads and self-service updates
type UserService interface {
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	GetUser(ctx context.Context, id int) (*model.PublicUser, error)
	UpdateMe(ctx context.Context, caller model.Identity, req model.UpdateUserRequest) (*model.PublicUser, error)
	DeleteMe(ctx context.Context, caller model.Identity) error
}

type userService struct {
	repo        repository.UserRepository
	credentials CredentialStore
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, credentials CredentialStore) UserService {
	return &userService{repo: repo, credentials: credentials}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]model.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *userService) GetUser(ctx context.Context, id int) (*model.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateMe changes the caller's own email and/or password.
// Tokens issued before an email change keep the old email claim until they are discarded.
func (s *userService) UpdateMe(ctx context.Context, caller model.Identity, req model.UpdateUserRequest) (*model.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if user == nil {
		return nil, ErrAccountMissing
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return nil, ErrConflict
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := s.credentials.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrAccountMissing
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}

// DeleteMe removes the caller's account together with all of their posts.
// Tokens already issued to the account are refused afterwards with ErrAccountMissing.
func (s *userService) DeleteMe(ctx context.Context, caller model.Identity) error {
	if err := s.repo.Delete(ctx, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountMissing
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	slog.InfoContext(ctx, "account deleted", "user_id", caller.UserID)
	return nil
}
