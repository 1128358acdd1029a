package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// CatalogService implements plant and category browsing and administration.
// Single-plant reads go through a cache-aside store; cache failures degrade
// to the repository, never to an error.
type CatalogService struct {
	plants     ports.PlantRepository
	categories ports.CategoryRepository
	cache      ports.PlantCache
	logger     zerolog.Logger
}

func NewCatalogService(plants ports.PlantRepository, categories ports.CategoryRepository, cache ports.PlantCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{plants: plants, categories: categories, cache: cache, logger: logger}
}

func (s *CatalogService) ListPlants(ctx context.Context, category string, page, size int) (*ports.PlantPage, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.plants.List(ctx, category, page, size)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.PlantPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

func (s *CatalogService) SearchPlants(ctx context.Context, query string) ([]*domain.Plant, error) {
	return s.plants.Search(ctx, query)
}

func (s *CatalogService) GetPlant(ctx context.Context, id string) (*domain.Plant, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("plant_id", id).Msg("plant cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	plant, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, plant); err != nil {
		s.logger.Warn().Err(err).Str("plant_id", id).Msg("plant cache write failed")
	}
	return plant, nil
}

func (s *CatalogService) CreatePlant(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	plant.CreatedAt = time.Now().UTC()
	return s.plants.Create(ctx, plant)
}

func (s *CatalogService) UpdatePlant(ctx context.Context, id string, patch ports.PlantPatch) (*domain.Plant, error) {
	plant, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(plant)
	updated, err := s.plants.Update(ctx, plant)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("plant_id", id).Msg("plant cache invalidation failed")
	}
	return updated, nil
}

func (s *CatalogService) DeletePlant(ctx context.Context, id string) error {
	if err := s.plants.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("plant_id", id).Msg("plant cache invalidation failed")
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	return s.categories.Create(ctx, &domain.Category{Name: name})
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
