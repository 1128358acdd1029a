package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// CatalogHandler handles the public plant/category browse routes and their
// admin counterparts.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListPlants handles GET /plants?page=&size=.
func (h *CatalogHandler) ListPlants(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.catalog.ListPlants(c.Request().Context(), "", page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListPlantsByCategory handles GET /plants/category/:category.
func (h *CatalogHandler) ListPlantsByCategory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.catalog.ListPlants(c.Request().Context(), c.Param("category"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// SearchPlants handles GET /plants/search?q=.
func (h *CatalogHandler) SearchPlants(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	plants, err := h.catalog.SearchPlants(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plants)
}

// GetPlant handles GET /plants/:id.
func (h *CatalogHandler) GetPlant(c echo.Context) error {
	plant, err := h.catalog.GetPlant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plant)
}

type plantRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// CreatePlant handles POST /api/admin/plants.
func (h *CatalogHandler) CreatePlant(c echo.Context) error {
	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plant, err := h.catalog.CreatePlant(c.Request().Context(), &domain.Plant{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plant)
}

type updatePlantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	Price       *int64  `json:"price"`
	Stock       *int    `json:"stock"`
}

// UpdatePlant handles PUT /api/admin/plants/:id.
func (h *CatalogHandler) UpdatePlant(c echo.Context) error {
	var req updatePlantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	plant, err := h.catalog.UpdatePlant(c.Request().Context(), c.Param("id"), ports.PlantPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plant)
}

// DeletePlant handles DELETE /api/admin/plants/:id.
func (h *CatalogHandler) DeletePlant(c echo.Context) error {
	if err := h.catalog.DeletePlant(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "plant deleted successfully"})
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCategory handles POST /api/admin/categories.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted successfully"})
}
