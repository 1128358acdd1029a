package domain

import (
	"errors"
	"time"
)

var ErrPlantNotFound = errors.New("plant not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")

// Plant is a catalog entry. Prices are stored in whole currency units.
type Plant struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       int64     `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Category groups plants for browsing.
type Category struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
