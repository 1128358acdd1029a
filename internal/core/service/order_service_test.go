package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneOrder(order)
	r.nextID++
	copy.ID = fmt.Sprintf("order_%d", r.nextID)
	r.orders[copy.ID] = cloneOrder(copy)
	return cloneOrder(copy), nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindByStatus(_ context.Context, status string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	r.orders[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type stubNotifier struct {
	mu       sync.Mutex
	sent     []string // "to|subject"
	bodies   []string
	failWith error
}

func (n *stubNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.sent = append(n.sent, to+"|"+subject)
	n.bodies = append(n.bodies, body)
	return nil
}

var aliceIdent = ports.Identity{UserID: "alice_id", Email: "alice@x.com", Role: domain.RoleUser}

func placeInput() ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		Name:    "Alice",
		Email:   "alice@x.com",
		Address: "12 Fern St",
		Items: []domain.OrderItem{
			{PlantID: "plantA", Name: "Monstera", Price: 100, Quantity: 2},
		},
		TotalAmount: 200,
	}
}

func TestOrderService_Place_StampsOwnerFromClaims(t *testing.T) {
	repo := newStubOrderRepo()
	notifier := &stubNotifier{}
	svc := NewOrderService(repo, notifier, zerolog.Nop())

	order, err := svc.Place(context.Background(), placeInput(), aliceIdent)
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if order.UserID != "alice_id" {
		t.Fatalf("expected owner alice_id, got %s", order.UserID)
	}
	if order.Status != domain.StatusPlaced {
		t.Fatalf("expected status %s, got %s", domain.StatusPlaced, order.Status)
	}

	persisted, err := repo.FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if persisted.UserID != "alice_id" {
		t.Fatalf("persisted owner mismatch: %s", persisted.UserID)
	}
}

func TestOrderService_Place_NotifierFailureIsSwallowed(t *testing.T) {
	repo := newStubOrderRepo()
	notifier := &stubNotifier{failWith: errors.New("smtp down")}
	svc := NewOrderService(repo, notifier, zerolog.Nop())

	order, err := svc.Place(context.Background(), placeInput(), aliceIdent)
	if err != nil {
		t.Fatalf("placement must survive notifier failure, got %v", err)
	}

	if _, err := repo.FindByID(context.Background(), order.ID); err != nil {
		t.Fatalf("order must remain persisted after notifier failure: %v", err)
	}
}

func TestOrderService_Place_SendsConfirmation(t *testing.T) {
	repo := newStubOrderRepo()
	notifier := &stubNotifier{}
	svc := NewOrderService(repo, notifier, zerolog.Nop())

	if _, err := svc.Place(context.Background(), placeInput(), aliceIdent); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0] != "alice@x.com|"+confirmationSubject {
		t.Fatalf("unexpected recipient/subject: %s", notifier.sent[0])
	}
	body := notifier.bodies[0]
	for _, want := range []string{"Monstera", "x2", "Total Amount: 200", "12 Fern St"} {
		if !strings.Contains(body, want) {
			t.Fatalf("confirmation body missing %q:\n%s", want, body)
		}
	}
}

func TestOrderService_ListMine_FiltersByOwner(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, &stubNotifier{}, zerolog.Nop())

	if _, err := svc.Place(context.Background(), placeInput(), aliceIdent); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	bob := ports.Identity{UserID: "bob_id", Email: "bob@x.com", Role: domain.RoleUser}

	mine, err := svc.ListMine(context.Background(), aliceIdent)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "alice_id" {
		t.Fatalf("unexpected orders for alice: %+v", mine)
	}

	theirs, err := svc.ListMine(context.Background(), bob)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("bob must see no orders, got %d", len(theirs))
	}
}

func TestOrderService_GetByID_ForeignOrderLooksMissing(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, &stubNotifier{}, zerolog.Nop())

	order, err := svc.Place(context.Background(), placeInput(), aliceIdent)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	bob := ports.Identity{UserID: "bob_id", Email: "bob@x.com", Role: domain.RoleUser}

	if _, err := svc.GetByID(context.Background(), order.ID, bob); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("foreign order must look missing, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "no-such-order", bob); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("missing order: expected ErrOrderNotFound, got %v", err)
	}

	got, err := svc.GetByID(context.Background(), order.ID, aliceIdent)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestOrderService_AdminUpdate_PartialMerge(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, &stubNotifier{}, zerolog.Nop())

	order, err := svc.Place(context.Background(), placeInput(), aliceIdent)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	status := domain.StatusShipped
	updated, err := svc.AdminUpdate(context.Background(), order.ID, ports.OrderPatch{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusShipped {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	if len(updated.Items) != 1 || updated.TotalAmount != 200 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.UserID != "alice_id" {
		t.Fatalf("ownership must be immutable, got %s", updated.UserID)
	}
}

func TestOrderService_AdminUpdate_GuardedFields(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, &stubNotifier{}, zerolog.Nop())

	order, err := svc.Place(context.Background(), placeInput(), aliceIdent)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	zero := int64(0)
	updated, err := svc.AdminUpdate(context.Background(), order.ID, ports.OrderPatch{
		Items:       []domain.OrderItem{},
		TotalAmount: &zero,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("an empty item list must not clear items")
	}
	if updated.TotalAmount != 200 {
		t.Fatalf("a zero total must not overwrite, got %d", updated.TotalAmount)
	}

	total := int64(350)
	updated, err = svc.AdminUpdate(context.Background(), order.ID, ports.OrderPatch{
		Items:       []domain.OrderItem{{PlantID: "plantB", Name: "Fern", Price: 350, Quantity: 1}},
		TotalAmount: &total,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].PlantID != "plantB" {
		t.Fatalf("non-empty item list must overwrite: %+v", updated.Items)
	}
	if updated.TotalAmount != 350 {
		t.Fatalf("positive total must overwrite, got %d", updated.TotalAmount)
	}
}

func TestOrderService_AdminUpdate_NotFound(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), &stubNotifier{}, zerolog.Nop())

	status := domain.StatusCancelled
	if _, err := svc.AdminUpdate(context.Background(), "missing", ports.OrderPatch{Status: &status}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_AdminListsAndDelete(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, &stubNotifier{}, zerolog.Nop())

	first, _ := svc.Place(context.Background(), placeInput(), aliceIdent)
	bob := ports.Identity{UserID: "bob_id", Email: "bob@x.com", Role: domain.RoleUser}
	second, _ := svc.Place(context.Background(), placeInput(), bob)

	all, err := svc.ListAll(context.Background())
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d (err=%v)", len(all), err)
	}

	byUser, err := svc.ListByUser(context.Background(), "bob_id")
	if err != nil || len(byUser) != 1 || byUser[0].ID != second.ID {
		t.Fatalf("unexpected byUser result: %+v (err=%v)", byUser, err)
	}

	status := domain.StatusShipped
	if _, err := svc.AdminUpdate(context.Background(), first.ID, ports.OrderPatch{Status: &status}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	shipped, err := svc.ListByStatus(context.Background(), domain.StatusShipped)
	if err != nil || len(shipped) != 1 || shipped[0].ID != first.ID {
		t.Fatalf("unexpected byStatus result: %+v (err=%v)", shipped, err)
	}

	if err := svc.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
}
