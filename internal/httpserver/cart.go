package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cartshop/internal/events"
	"github.com/Skotchmaster/cartshop/internal/logging"
	"github.com/Skotchmaster/cartshop/internal/service"
	"github.com/Skotchmaster/cartshop/internal/transport"
)

const (
	msgMissingFields    = "Missing required fields"
	msgCartItemNotFound = "Cart item not found"
	msgAdded            = "Product added to cart"
	msgUpdated          = "Product quantity updated"
	msgRemoved          = "Product removed from cart"

	publishTimeout = 5 * time.Second
)

type CartHTTP struct {
	Svc    *service.CartService
	Events events.Publisher
}

func (h *CartHTTP) publish(c echo.Context, ev events.CartEvent) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()
	if err := h.Events.Publish(ctx, strconv.FormatInt(ev.ProductID, 10), ev); err != nil {
		logging.FromContext(ctx).Error("publish_cart_event_failed", "type", ev.Type, "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	items, err := h.Svc.GetCart(ctx)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, transport.CartItemsFromModels(items))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields)
	}

	item, created, err := h.Svc.AddToCart(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields)
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return err
	}

	ev := events.CartEvent{
		Type:       events.TypeCartItemUpdated,
		CartItemID: item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
	}
	status, msg := http.StatusOK, msgUpdated
	if created {
		ev.Type = events.TypeCartItemAdded
		status, msg = http.StatusCreated, msgAdded
	}
	h.publish(c, ev)

	l.Info("add_to_cart_success", "cart_item_id", item.ID, "created", created)
	return c.JSON(status, transport.MessageResponse{Message: msg})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	id, err := parseID(c.Param("id"))
	if errors.Is(err, errIDOutOfRange) {
		l.Warn("remove_from_cart_error", "status", 404, "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgCartItemNotFound)
	}
	if err != nil {
		return echo.ErrNotFound
	}

	item, err := h.Svc.RemoveFromCart(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgCartItemNotFound)
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, events.CartEvent{
		Type:       events.TypeCartItemRemoved,
		CartItemID: item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
	})

	l.Info("remove_from_cart_success", "cart_item_id", item.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msgRemoved})
}
