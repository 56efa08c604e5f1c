package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cartshop/internal/models"
	"github.com/Skotchmaster/cartshop/internal/transport"
)

type CartRepo interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, productID int64, quantity float64) (*models.CartItem, bool, error)
	DeleteCartItem(ctx context.Context, id int64) (*models.CartItem, error)
}

type CartService struct {
	Repo CartRepo
}

func (s *CartService) GetCart(ctx context.Context) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx)
}

// AddToCart requires both fields to be present and non-zero. A zero quantity
// is rejected exactly like a missing one; negative and fractional quantities
// pass through. product_id may be spelled as a float when it is whole.
func (s *CartService) AddToCart(ctx context.Context, req transport.AddToCartRequest) (*models.CartItem, bool, error) {
	if req.ProductID == "" {
		return nil, false, fmt.Errorf("product_id is required: %w", ErrValidation)
	}
	productID, ok := wholeNumber(req.ProductID)
	if !ok {
		return nil, false, fmt.Errorf("product_id %s is not a whole number: %w", req.ProductID, ErrValidation)
	}
	if productID == 0 {
		return nil, false, fmt.Errorf("product_id is required: %w", ErrValidation)
	}

	quantity, err := req.Quantity.Float64()
	if err != nil || quantity == 0 {
		return nil, false, fmt.Errorf("quantity is required: %w", ErrValidation)
	}

	return s.Repo.AddToCart(ctx, productID, quantity)
}

func wholeNumber(n json.Number) (int64, bool) {
	if v, err := n.Int64(); err == nil {
		return v, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func (s *CartService) RemoveFromCart(ctx context.Context, id int64) (*models.CartItem, error) {
	item, err := s.Repo.DeleteCartItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	return item, err
}
