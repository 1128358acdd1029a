package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/api/metrics"
	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

const confirmationSubject = "Your Order Confirmation - GreenNest"

// OrderService implements the order lifecycle.
type OrderService struct {
	repo     ports.OrderRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, notifier ports.Notifier, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, logger: logger}
}

// Place persists the order and triggers the confirmation notification.
// Ownership comes from the authenticated identity; whatever user id the
// client put in the payload was discarded before input was built. The
// notification is best effort: once the store write succeeds the order is
// committed and a notifier failure is logged and swallowed.
func (s *OrderService) Place(ctx context.Context, input ports.PlaceOrderInput, ident ports.Identity) (*domain.Order, error) {
	status := domain.StatusPlaced

	order := &domain.Order{
		UserID:      ident.UserID,
		Name:        input.Name,
		Email:       input.Email,
		Address:     input.Address,
		Items:       input.Items,
		TotalAmount: input.TotalAmount,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ident.UserID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	s.logger.Info().Str("order_id", created.ID).Str("user_id", created.UserID).Msg("order placed")

	if err := s.notifier.Send(created.Email, confirmationSubject, confirmationBody(created)); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("order confirmation not sent")
	} else {
		metrics.NotificationsTotal.WithLabelValues("success").Inc()
	}

	return created, nil
}

func (s *OrderService) ListMine(ctx context.Context, ident ports.Identity) ([]*domain.Order, error) {
	return s.repo.FindByUserID(ctx, ident.UserID)
}

// GetByID returns the order only when it is owned by the caller. A missing
// order and a foreign-owned order produce the same error.
func (s *OrderService) GetByID(ctx context.Context, id string, ident ports.Identity) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != ident.UserID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) AdminGet(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// AdminUpdate applies a field-level partial overwrite. Status is free-form.
func (s *OrderService) AdminUpdate(ctx context.Context, id string, patch ports.OrderPatch) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(order)
	return s.repo.Update(ctx, order)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	return s.repo.FindByStatus(ctx, status)
}

// confirmationBody renders the plain-text order confirmation.
func confirmationBody(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", order.Name)
	b.WriteString("Thank you for your order!\n\nHere are your order details:\n\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (x%d) - %d\n", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal Amount: %d\n\n", order.TotalAmount)
	fmt.Fprintf(&b, "We will deliver your order to:\n%s\n\n", order.Address)
	fmt.Fprintf(&b, "Order Status: %s\n\n", order.Status)
	b.WriteString("Thanks,\nTeam GreenNest")
	return b.String()
}
