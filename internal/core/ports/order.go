package ports

import (
	"context"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

// Identity is the authenticated caller, as extracted from verified token
// claims by the auth gate. Handlers never build one from request payloads.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	FindByStatus(ctx context.Context, status string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// PlaceOrderInput carries the client-supplied order details. Any user id in
// the request payload is discarded before this struct is built; ownership
// comes exclusively from Identity.
type PlaceOrderInput struct {
	Name        string
	Email       string
	Address     string
	Items       []domain.OrderItem
	TotalAmount int64
}

// OrderService defines the order lifecycle use cases. The Admin* and List*
// methods assume the caller has already been gate-authorized as ADMIN and
// apply no ownership filtering.
type OrderService interface {
	// Place persists the order stamped with the caller's user id, then
	// triggers a confirmation notification as a best-effort side effect.
	// Notification failure never fails or rolls back the placement.
	Place(ctx context.Context, input PlaceOrderInput, ident Identity) (*domain.Order, error)
	ListMine(ctx context.Context, ident Identity) ([]*domain.Order, error)
	// GetByID returns domain.ErrOrderNotFound both when the order does not
	// exist and when it is owned by a different user, so existence is never
	// leaked to unauthorized callers.
	GetByID(ctx context.Context, id string, ident Identity) (*domain.Order, error)
	AdminUpdate(ctx context.Context, id string, patch OrderPatch) (*domain.Order, error)
	AdminGet(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Order, error)
}
