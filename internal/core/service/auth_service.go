package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/api/metrics"
	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// AuthService implements registration, login and account management.
type AuthService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	tokens *TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, tokens *TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a new account with a hashed password. The email conflict
// is checked twice: a lookup before the write, and the store's unique index
// on the write itself, so concurrent registrations with the same email can
// never both succeed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password and issues a session token.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{
		Token: token,
		Role:  user.Role,
		Email: user.Email,
		ID:    user.ID,
		Name:  user.Name,
	}, nil
}

// Logout is a stateless acknowledgement. The presented token stays valid
// until its expiry; discarding it is the client's responsibility.
func (s *AuthService) Logout() {}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies a partial update. A supplied non-empty password is
// re-hashed before storage; an absent or empty one leaves the stored hash
// untouched.
func (s *AuthService) UpdateUser(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if patch.Password != nil && *patch.Password != "" {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// ForgotPassword overwrites the stored hash for the given email. No identity
// verification beyond knowing the email is performed; this mirrors the
// legacy behavior and is a known design gap.
func (s *AuthService) ForgotPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// DeleteUser removes the account. Absence of the id is not an error.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
