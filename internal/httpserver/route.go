package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/metrics"
	"github.com/Skotchmaster/bazar/internal/middleware"
	"github.com/Skotchmaster/bazar/internal/tokens"
)

const Banner = "Bazar dot com server is running"

type Deps struct {
	Tokens *tokens.Issuer
	// Users backs the role guards.
	Users middleware.UserLookup
	// Ready reports whether the store answers; used by /health/ready.
	Ready   func(ctx context.Context) error
	Metrics *metrics.Metrics

	TokenHandler   *TokenHTTP
	UserHandler    *UserHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	PaymentHandler *PaymentHTTP
}

// New returns an echo instance with the common middleware chain installed.
func New(logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, Banner) })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Error("ready_error", "status", 503, "reason", "store unreachable", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	authMW := middleware.Verifier(d.Tokens)
	adminOnly := middleware.RequireAdmin(d.Users)
	staffOnly := middleware.RequireModeratorOrAdmin(d.Users)

	e.POST("/jwt", d.TokenHandler.IssueToken)

	users := e.Group("/users", authMW)
	users.GET("", d.UserHandler.ListUsers, staffOnly)
	users.POST("", d.UserHandler.CreateUser)
	users.GET("/admin/:email", d.UserHandler.IsAdmin)
	users.GET("/moderator/:email", d.UserHandler.IsModerator)
	users.PUT("/makeAdmin", d.UserHandler.MakeAdmin, adminOnly)
	users.PUT("/makeModerator", d.UserHandler.MakeModerator, adminOnly)

	e.GET("/products", d.CatalogHandler.GetProducts)
	e.GET("/products/search", d.CatalogHandler.SearchProducts)
	products := e.Group("/products", authMW)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, adminOnly)
	products.PUT("/:id", d.CatalogHandler.UpsertProduct, adminOnly)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, adminOnly)

	orders := e.Group("/orders", authMW)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)

	e.POST("/create-payment-intent", d.PaymentHandler.CreateIntent, authMW)
	payments := e.Group("/payments", authMW)
	payments.POST("", d.PaymentHandler.ConfirmPayment)
	payments.GET("", d.PaymentHandler.ListPayments)
}
