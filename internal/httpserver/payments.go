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

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create_intent")

	var req transport.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_intent_error", "invalid body", err)
	}

	secret, err := h.Svc.CreateIntent(ctx, req.Price)
	if err != nil {
		return fail(l, "create_intent_error", err)
	}

	l.Info("create_intent_success")
	return c.JSON(http.StatusOK, transport.CreateIntentResponse{ClientSecret: secret})
}

func (h *PaymentHTTP) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.confirm")

	var req transport.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "confirm_payment_error", "invalid body", err)
	}
	orderID, err := models.ParseID(req.OrderID)
	if err != nil {
		return badRequest(l, "confirm_payment_error", "invalid order id", err)
	}

	res, err := h.Svc.ConfirmPayment(ctx, middleware.Email(c), service.Confirmation{
		OrderID:       orderID,
		Price:         req.Price,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return fail(l, "confirm_payment_error", err)
	}

	l.Info("confirm_payment_success", "order", req.OrderID, "id", res.InsertedID)
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHTTP) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.list")

	list, err := h.Svc.ListPayments(ctx, middleware.Email(c), c.QueryParam("email"))
	if err != nil {
		return fail(l, "list_payments_error", err)
	}
	return c.JSON(http.StatusOK, list)
}
