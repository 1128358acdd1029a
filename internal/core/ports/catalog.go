package ports

import (
	"context"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

// PlantRepository defines persistence operations for catalog plants.
type PlantRepository interface {
	Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	// List returns one page of plants plus the total match count. An empty
	// category means no category filter.
	List(ctx context.Context, category string, page, size int) ([]*domain.Plant, int64, error)
	Search(ctx context.Context, query string) ([]*domain.Plant, error)
	Update(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// PlantCache is a read-through cache for single-plant lookups. A miss is
// reported as (nil, nil); cache failures must never fail the read path.
type PlantCache interface {
	Get(ctx context.Context, id string) (*domain.Plant, error)
	Set(ctx context.Context, plant *domain.Plant) error
	Invalidate(ctx context.Context, id string) error
}

// PlantPage is one page of catalog results.
type PlantPage struct {
	Items      []*domain.Plant `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalPages int             `json:"total_pages"`
}

// CatalogService defines the plant and category use cases.
type CatalogService interface {
	ListPlants(ctx context.Context, category string, page, size int) (*PlantPage, error)
	SearchPlants(ctx context.Context, query string) ([]*domain.Plant, error)
	GetPlant(ctx context.Context, id string) (*domain.Plant, error)
	CreatePlant(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	UpdatePlant(ctx context.Context, id string, patch PlantPatch) (*domain.Plant, error)
	DeletePlant(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
