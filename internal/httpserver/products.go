package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/service"
	"github.com/Skotchmaster/bazar/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_product_error", "invalid product id", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product_error", "invalid body", err)
	}
	if req.Price == nil {
		return badRequest(l, "create_product_error", "price is required", errors.New("missing price"))
	}

	res, err := h.Svc.CreateProduct(ctx, models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return fail(l, "create_product_error", err)
	}

	l.Info("create_product_success", "id", res.InsertedID)
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) UpsertProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upsert_product")

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "upsert_product_error", "invalid product id", err)
	}

	var req transport.UpsertProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "upsert_product_error", "invalid body", err)
	}
	if req.Price == nil {
		return badRequest(l, "upsert_product_error", "price is required", errors.New("missing price"))
	}

	res, err := h.Svc.UpsertProduct(ctx, id, req.Name, *req.Price)
	if err != nil {
		return fail(l, "upsert_product_error", err)
	}

	l.Info("upsert_product_success", "id", id.Hex())
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_product_error", "invalid product id", err)
	}

	res, err := h.Svc.DeleteProduct(ctx, id)
	if err != nil {
		return fail(l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "id", id.Hex())
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	res, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
