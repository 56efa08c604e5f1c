package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cartshop/internal/logging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	Store          Pinger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := d.Store.Ping(ctx); err != nil {
			logging.FromContext(ctx).Error("readiness_failed", "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	if d.CatalogHandler.Search != nil {
		products.GET("/search", d.CatalogHandler.SearchProducts)
	}

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
}
