package ports

import (
	"context"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts. The store
// is the authority for email uniqueness: Create must fail with
// domain.ErrEmailExists when the email is already taken, even under
// concurrent registrations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete is idempotent; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// RegisterInput carries a registration candidate. Role defaults to
// REGULAR_USER when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	Role  string
	Email string
	ID    string
	Name  string
}

// AuthService defines the identity use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns domain.ErrInvalidCredentials for both an unknown email
	// and a wrong password, so callers cannot enumerate accounts.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout is a stateless acknowledgement. Issued tokens stay valid until
	// expiry; there is no server-side revocation.
	Logout()
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	ForgotPassword(ctx context.Context, email, newPassword string) error
	DeleteUser(ctx context.Context, id string) error
}
