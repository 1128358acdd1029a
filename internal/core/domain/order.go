package domain

import (
	"errors"
	"time"
)

// Conventional order statuses. No transition graph is enforced: status is a
// free-form field overwritten by admin updates.
const (
	StatusPlaced     = "PLACED"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderItem is a line item owned by its order; it has no identity of its own.
type OrderItem struct {
	PlantID  string `json:"plant_id" bson:"plant_id"`
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Order is the primary business artifact of the storefront.
//
// UserID is always derived from the caller's token claims at placement and is
// immutable afterwards. Name, Email and Address are the client-supplied
// fulfillment details, distinct from the account record. TotalAmount is
// trusted from the client and not reconciled against the line items.
type Order struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	UserID      string      `json:"user_id" bson:"user_id"`
	Name        string      `json:"name" bson:"name"`
	Email       string      `json:"email" bson:"email"`
	Address     string      `json:"address" bson:"address"`
	Items       []OrderItem `json:"items" bson:"items"`
	TotalAmount int64       `json:"total_amount" bson:"total_amount"`
	Status      string      `json:"status" bson:"status"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}
