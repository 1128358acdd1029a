package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// OrderHandler handles the customer-facing order routes.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// --- Request / Response types ---

type orderItemRequest struct {
	PlantID  string `json:"plant_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// placeOrderRequest deliberately has no user id field: ownership always
// comes from the verified token claims, never from the payload.
type placeOrderRequest struct {
	Name        string             `json:"name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Address     string             `json:"address" validate:"required"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount int64              `json:"total_amount" validate:"required,gt=0"`
}

// Place handles POST /orders/place.
//
// @Summary      Place a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /orders/place [post]
func (h *OrderHandler) Place(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			PlantID:  item.PlantID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	order, err := h.orderService.Place(c.Request().Context(), ports.PlaceOrderInput{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Items:       items,
		TotalAmount: req.TotalAmount,
	}, ident)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// ListMine handles GET /orders/my-orders: only the caller's own orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListMine(c.Request().Context(), ident)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id. An order owned by another user is reported
// exactly like a missing one.
func (h *OrderHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetByID(c.Request().Context(), c.Param("id"), ident)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
