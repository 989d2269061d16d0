package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"community_board/internal/model"
	"community_board/internal/repository"
)

// CredentialStore hashes and checks passwords
type CredentialStore interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs session tokens for an identity
type TokenIssuer interface {
	GenerateToken(id model.Identity) (string, error)
}

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.AuthResult, error)
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
}

type authService struct {
	userRepo    repository.UserRepository
	credentials CredentialStore
	tokens      TokenIssuer
	// dummyHash is verified against when the email is unknown, so both
	// login failures cost one full hash comparison.
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, credentials CredentialStore, tokens TokenIssuer) AuthService {
	dummyHash, err := credentials.Hash("community-board-dummy-password")
	if err != nil {
		slog.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &authService{
		userRepo:    userRepo,
		credentials: credentials,
		tokens:      tokens,
		dummyHash:   dummyHash,
	}
}

// Register creates a new account with role USER and signs it in
func (s *authService) Register(ctx context.Context, email, password string) (*model.AuthResult, error) {
	if err := (model.RegisterRequest{Email: email, Password: password}).ValidateRegister(); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrConflict
	}

	hashedPassword, err := s.credentials.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration won the race past FindByEmail.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	slog.InfoContext(ctx, "user registered", "user_id", user.ID)

	return s.issue(ctx, user)
}

// Login authenticates a user and returns a signed token
func (s *authService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	if err := (model.RegisterRequest{Email: email, Password: password}).ValidateLogin(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}

	targetHash := s.dummyHash
	if user != nil {
		targetHash = user.PasswordHash
	}
	// Verify runs even for unknown emails so response time does not reveal
	// which accounts exist.
	match := s.credentials.Verify(password, targetHash)

	if user == nil {
		slog.DebugContext(ctx, "login rejected", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}
	if !match {
		slog.DebugContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *model.User) (*model.AuthResult, error) {
	token, err := s.tokens.GenerateToken(model.IdentityOf(user))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.AuthResult{AccessToken: token, User: user.Public()}, nil
}
