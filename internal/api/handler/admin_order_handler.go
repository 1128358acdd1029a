package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// AdminOrderHandler handles the administrative order routes. Ownership is
// not filtered here; the route group already requires the ADMIN role.
type AdminOrderHandler struct {
	orderService ports.OrderService
}

func NewAdminOrderHandler(orderService ports.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orderService: orderService}
}

func (h *AdminOrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) Get(c echo.Context) error {
	order, err := h.orderService.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) ListByUser(c echo.Context) error {
	orders, err := h.orderService.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) ListByStatus(c echo.Context) error {
	orders, err := h.orderService.ListByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

type updateOrderRequest struct {
	Name        *string            `json:"name"`
	Address     *string            `json:"address"`
	Status      *string            `json:"status"`
	Items       []orderItemRequest `json:"items" validate:"omitempty,dive"`
	TotalAmount *int64             `json:"total_amount"`
}

// Update handles PUT /api/admin/orders/:id. Absent fields leave the order
// untouched; an empty item list and a non-positive total are also no-ops.
//
// @Summary      Update an order (admin)
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Fields to overwrite"
// @Success      200   {object}  domain.Order
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/orders/{id} [put]
func (h *AdminOrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var items []domain.OrderItem
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			PlantID:  item.PlantID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	order, err := h.orderService.AdminUpdate(c.Request().Context(), c.Param("id"), ports.OrderPatch{
		Name:        req.Name,
		Address:     req.Address,
		Status:      req.Status,
		Items:       items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted successfully"})
}
