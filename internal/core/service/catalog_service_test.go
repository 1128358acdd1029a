package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

type stubPlantRepo struct {
	mu      sync.Mutex
	plants  map[string]*domain.Plant
	nextID  int
	finds   int
	listLog []listCall
}

type listCall struct {
	category   string
	page, size int
}

func newStubPlantRepo() *stubPlantRepo {
	return &stubPlantRepo{plants: make(map[string]*domain.Plant)}
}

func clonePlant(p *domain.Plant) *domain.Plant {
	clone := *p
	return &clone
}

func (r *stubPlantRepo) Create(_ context.Context, plant *domain.Plant) (*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := clonePlant(plant)
	r.nextID++
	created.ID = fmt.Sprintf("plant_%d", r.nextID)
	r.plants[created.ID] = clonePlant(created)
	return created, nil
}

func (r *stubPlantRepo) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	p, ok := r.plants[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	return clonePlant(p), nil
}

func (r *stubPlantRepo) List(_ context.Context, category string, page, size int) ([]*domain.Plant, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listLog = append(r.listLog, listCall{category: category, page: page, size: size})
	out := make([]*domain.Plant, 0)
	for _, p := range r.plants {
		if category == "" || p.Category == category {
			out = append(out, clonePlant(p))
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPlantRepo) Search(_ context.Context, _ string) ([]*domain.Plant, error) {
	return nil, nil
}

func (r *stubPlantRepo) Update(_ context.Context, plant *domain.Plant) (*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[plant.ID]; !ok {
		return nil, domain.ErrPlantNotFound
	}
	r.plants[plant.ID] = clonePlant(plant)
	return clonePlant(plant), nil
}

func (r *stubPlantRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plants, id)
	return nil
}

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == category.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	r.nextID++
	created := &domain.Category{ID: fmt.Sprintf("cat_%d", r.nextID), Name: category.Name}
	r.categories[created.ID] = created
	return created, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

type stubPlantCache struct {
	mu          sync.Mutex
	entries     map[string]*domain.Plant
	getErr      error
	setErr      error
	invalidated []string
}

func newStubPlantCache() *stubPlantCache {
	return &stubPlantCache{entries: make(map[string]*domain.Plant)}
}

func (c *stubPlantCache) Get(_ context.Context, id string) (*domain.Plant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return clonePlant(p), nil
}

func (c *stubPlantCache) Set(_ context.Context, plant *domain.Plant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[plant.ID] = clonePlant(plant)
	return nil
}

func (c *stubPlantCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

func newTestCatalogService() (*CatalogService, *stubPlantRepo, *stubCategoryRepo, *stubPlantCache) {
	plants := newStubPlantRepo()
	categories := newStubCategoryRepo()
	cache := newStubPlantCache()
	return NewCatalogService(plants, categories, cache, zerolog.Nop()), plants, categories, cache
}

func TestCatalogService_GetPlant_CacheAside(t *testing.T) {
	svc, plants, _, _ := newTestCatalogService()

	created, err := svc.CreatePlant(context.Background(), &domain.Plant{Name: "Monstera", Price: 100, Stock: 3})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.GetPlant(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if got.Name != "Monstera" {
		t.Fatalf("unexpected plant: %+v", got)
	}
	if plants.finds != 1 {
		t.Fatalf("first get must hit the repository, finds=%d", plants.finds)
	}

	if _, err := svc.GetPlant(context.Background(), created.ID); err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if plants.finds != 1 {
		t.Fatalf("second get must be served from cache, finds=%d", plants.finds)
	}
}

func TestCatalogService_GetPlant_CacheFailureFallsThrough(t *testing.T) {
	svc, plants, _, cache := newTestCatalogService()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	created, err := svc.CreatePlant(context.Background(), &domain.Plant{Name: "Fern"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.GetPlant(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("cache failure must not fail the read: %v", err)
	}
	if got.Name != "Fern" {
		t.Fatalf("unexpected plant: %+v", got)
	}
	if plants.finds != 1 {
		t.Fatalf("repository must serve the read, finds=%d", plants.finds)
	}
}

func TestCatalogService_GetPlant_NotFound(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()

	if _, err := svc.GetPlant(context.Background(), "missing"); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound, got %v", err)
	}
}

func TestCatalogService_UpdatePlant_InvalidatesCache(t *testing.T) {
	svc, _, _, cache := newTestCatalogService()

	created, _ := svc.CreatePlant(context.Background(), &domain.Plant{Name: "Monstera", Price: 100, Stock: 3})
	if _, err := svc.GetPlant(context.Background(), created.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	name := "Monstera Deliciosa"
	updated, err := svc.UpdatePlant(context.Background(), created.ID, ports.PlantPatch{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name || updated.Price != 100 || updated.Stock != 3 {
		t.Fatalf("partial update went wrong: %+v", updated)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != created.ID {
		t.Fatalf("cache entry must be invalidated, got %v", cache.invalidated)
	}
}

func TestCatalogService_UpdatePlant_GuardedFields(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()

	created, _ := svc.CreatePlant(context.Background(), &domain.Plant{Name: "Monstera", Price: 100, Stock: 3})

	zeroPrice := int64(0)
	negStock := -1
	updated, err := svc.UpdatePlant(context.Background(), created.ID, ports.PlantPatch{Price: &zeroPrice, Stock: &negStock})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 100 {
		t.Fatalf("a non-positive price must not overwrite, got %d", updated.Price)
	}
	if updated.Stock != 3 {
		t.Fatalf("a negative stock must not overwrite, got %d", updated.Stock)
	}

	zeroStock := 0
	updated, err = svc.UpdatePlant(context.Background(), created.ID, ports.PlantPatch{Stock: &zeroStock})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Stock != 0 {
		t.Fatalf("a zero stock is a valid overwrite, got %d", updated.Stock)
	}
}

func TestCatalogService_DeletePlant_InvalidatesCache(t *testing.T) {
	svc, _, _, cache := newTestCatalogService()

	created, _ := svc.CreatePlant(context.Background(), &domain.Plant{Name: "Monstera"})
	if err := svc.DeletePlant(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected one invalidation, got %v", cache.invalidated)
	}
	if _, err := svc.GetPlant(context.Background(), created.ID); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound after delete, got %v", err)
	}
}

func TestCatalogService_ListPlants_ClampsPaging(t *testing.T) {
	svc, plants, _, _ := newTestCatalogService()

	page, err := svc.ListPlants(context.Background(), "", -3, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Page != 1 || page.Size != defaultPageSize {
		t.Fatalf("expected clamped page=1 size=%d, got page=%d size=%d", defaultPageSize, page.Page, page.Size)
	}
	if got := plants.listLog[len(plants.listLog)-1]; got.page != 1 || got.size != defaultPageSize {
		t.Fatalf("repository saw unclamped paging: %+v", got)
	}

	page, err = svc.ListPlants(context.Background(), "", 2, 10000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Size != maxPageSize {
		t.Fatalf("expected size capped at %d, got %d", maxPageSize, page.Size)
	}
}

func TestCatalogService_ListPlants_TotalPages(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreatePlant(context.Background(), &domain.Plant{Name: fmt.Sprintf("p%d", i)}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := svc.ListPlants(context.Background(), "", 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 {
		t.Fatalf("expected total=5 totalPages=3, got total=%d totalPages=%d", page.Total, page.TotalPages)
	}
}

func TestCatalogService_Categories(t *testing.T) {
	svc, _, _, _ := newTestCatalogService()

	created, err := svc.CreateCategory(context.Background(), "Indoor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), "Indoor"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	list, err := svc.ListCategories(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one category, got %d (err=%v)", len(list), err)
	}

	if err := svc.DeleteCategory(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	list, _ = svc.ListCategories(context.Background())
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}
