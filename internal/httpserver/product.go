package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cartshop/internal/logging"
	"github.com/Skotchmaster/cartshop/internal/service"
	"github.com/Skotchmaster/cartshop/internal/transport"
)

const (
	msgProductNotFound = "Product not found"
	msgMissingQuery    = "Missing search query"
	msgSearchDown      = "Search unavailable"

	defaultSearchSize = 20
	maxSearchSize     = 100
)

type ProductSearcher interface {
	Search(ctx context.Context, query string, size int) (int64, []transport.ProductResponse, error)
}

type CatalogHTTP struct {
	Svc    *service.CatalogService
	Search ProductSearcher
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, transport.ProductsFromModels(items))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c.Param("id"))
	if errors.Is(err, errIDOutOfRange) {
		l.Warn("get_product_failed", "status", 404, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return echo.ErrNotFound
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, transport.ProductFromModel(*product))
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingQuery)
	}

	size := parseIntDefault(c.QueryParam("size"), defaultSearchSize)
	if size < 1 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}

	total, products, err := h.Search.Search(ctx, q, size)
	if err != nil {
		l.Error("search_products_failed", "status", 502, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, msgSearchDown)
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: products})
}
