package transport

import (
	"encoding/json"

	"github.com/Skotchmaster/cartshop/internal/models"
)

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url"`
}

type CartItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// AddToCartRequest keeps both fields as raw JSON numbers so that 5, 5.0 and
// 1.5 all decode. A missing or null field is left empty.
type AddToCartRequest struct {
	ProductID json.Number `json:"product_id"`
	Quantity  json.Number `json:"quantity"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SearchResponse struct {
	Total    int64             `json:"total"`
	Products []ProductResponse `json:"products"`
}

func ProductFromModel(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

func ProductsFromModels(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ProductFromModel(p))
	}
	return out
}

func CartItemFromModel(it models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
	}
}

func CartItemsFromModels(items []models.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CartItemFromModel(it))
	}
	return out
}
