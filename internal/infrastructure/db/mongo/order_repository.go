package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Address     string             `bson:"address"`
	Items       []domain.OrderItem `bson:"items"`
	TotalAmount int64              `bson:"total_amount"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toDomainOrder(mo mongoOrder) *domain.Order {
	return &domain.Order{
		ID:          mo.ID.Hex(),
		UserID:      mo.UserID,
		Name:        mo.Name,
		Email:       mo.Email,
		Address:     mo.Address,
		Items:       mo.Items,
		TotalAmount: mo.TotalAmount,
		Status:      mo.Status,
		CreatedAt:   mo.CreatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:      order.UserID,
		Name:        order.Name,
		Email:       order.Email,
		Address:     order.Address,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toDomainOrder(mo), nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := make([]*domain.Order, 0)
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, toDomainOrder(mo))
	}
	return orders, cur.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// user_id is immutable after creation and deliberately absent here.
	update := bson.M{"$set": bson.M{
		"name":         order.Name,
		"address":      order.Address,
		"status":       order.Status,
		"items":        order.Items,
		"total_amount": order.TotalAmount,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// EnsureIndexes creates the query indexes for the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
