package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/middleware"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/service"
	"github.com/Skotchmaster/bazar/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders, err := h.Svc.ListOrders(ctx, middleware.Email(c), c.QueryParam("email"))
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_order_error", "invalid order id", err)
	}

	order, err := h.Svc.GetOrder(ctx, middleware.Email(c), id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order_error", "invalid body", err)
	}

	res, err := h.Svc.CreateOrder(ctx, middleware.Email(c), models.Order{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       req.Price,
	})
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "id", res.InsertedID)
	return c.JSON(http.StatusOK, res)
}
